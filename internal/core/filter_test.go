package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleTenants = []Tenant{
	{Name: "Ada Lovelace", Email: "ada@example.com", EmailSent: EmailSentStatus},
	{Name: "Grace Hopper", Email: "grace@example.com", EmailSent: "PENDING"},
	{Name: "Alan Turing", Email: "alan@machines.dev", EmailSent: EmailSentStatus},
}

var sampleIssues = []Issue{
	{Name: "Ada Lovelace", Address: "1 Analytical Way", Category: CategoryPlumbing, Description: "Sink leaking badly"},
	{Name: "Grace Hopper", Address: "12 Harbor St", Category: CategoryHVAC, Description: "No heating upstairs"},
	{Name: "Alan Turing", Address: "3 Bletchley Rd", Category: CategoryElectrical, Description: "Sparking outlet"},
}

func TestFilterTenantsIdentity(t *testing.T) {
	got := FilterTenants(sampleTenants, "", FilterAll)
	require.Len(t, got, len(sampleTenants))
	for i := range got {
		assert.Equal(t, sampleTenants[i], got[i], "order must be preserved")
	}
}

func TestFilterTenantsNameSubstrings(t *testing.T) {
	// Any case-folded substring of a record's name must match it.
	name := strings.ToLower(sampleTenants[1].Name)
	for i := 0; i < len(name); i++ {
		for j := i + 1; j <= len(name); j++ {
			got := FilterTenants(sampleTenants, name[i:j], FilterAll)
			assert.Contains(t, got, sampleTenants[1], "substring %q", name[i:j])
		}
	}
}

func TestFilterTenantsMatchesEmailToo(t *testing.T) {
	got := FilterTenants(sampleTenants, "machines.dev", FilterAll)
	require.Len(t, got, 1)
	assert.Equal(t, "Alan Turing", got[0].Name)
}

func TestFilterTenantsStatusStage(t *testing.T) {
	sent := FilterTenants(sampleTenants, "", FilterSent)
	require.Len(t, sent, 2)

	pending := FilterTenants(sampleTenants, "", FilterPending)
	require.Len(t, pending, 1)
	assert.Equal(t, "Grace Hopper", pending[0].Name)

	// Both stages must hold: Ada matches the query but is not pending.
	both := FilterTenants(sampleTenants, "ada", FilterPending)
	assert.Empty(t, both)
}

func TestFilterIssuesIdentity(t *testing.T) {
	got := FilterIssues(sampleIssues, "", FilterAll)
	assert.Equal(t, sampleIssues, got)
}

func TestFilterIssuesTextFields(t *testing.T) {
	byAddress := FilterIssues(sampleIssues, "harbor", FilterAll)
	require.Len(t, byAddress, 1)
	assert.Equal(t, "Grace Hopper", byAddress[0].Name)

	byDescription := FilterIssues(sampleIssues, "SPARKING", FilterAll)
	require.Len(t, byDescription, 1)
	assert.Equal(t, CategoryElectrical, byDescription[0].Category)
}

func TestFilterIssuesCategoryStage(t *testing.T) {
	hvac := FilterIssues(sampleIssues, "", CategoryHVAC)
	require.Len(t, hvac, 1)
	assert.Equal(t, "Grace Hopper", hvac[0].Name)

	// No HVAC description mentions "leak": empty result, not an error.
	none := FilterIssues(sampleIssues, "leak", CategoryHVAC)
	assert.Empty(t, none)
}
