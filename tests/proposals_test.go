//go:build integration
// +build integration

package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_SendWhatsAppProposal(t *testing.T) {
	token := createAuthenticatedOperator(t)
	customerID := submitTestLead(t, "Proposal Targets GmbH")
	serviceID := createTestService(t, token, "WhatsApp Deal", "$2,500 - $5,000")

	resp := POST(t, "/api/protected/customers/"+customerID+"/proposals").
		WithToken(token).
		WithBody(map[string]interface{}{
			"service_ids":   []string{serviceID},
			"proposal_type": "whatsapp",
		}).
		Do()
	resp.RequireStatus(http.StatusCreated)
	data := resp.JSON()

	link, _ := data["whatsapp_link"].(string)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/?text="), "whatsapp link = %q", link)

	// First price figure wins: $2,500 -> 2500
	assert.Equal(t, float64(2500), data["total_value"])

	// The customer moves to proposal_sent
	customer := data["customer"].(map[string]interface{})
	assert.Equal(t, "proposal_sent", customer["status"])

	// Proposal history records the send
	histResp := GET(t, "/api/protected/customers/"+customerID+"/proposals").WithToken(token).Do()
	histResp.RequireStatus(http.StatusOK)
	proposals, ok := histResp.JSON()["proposals"].([]interface{})
	require.True(t, ok, "expected proposals array")
	require.Len(t, proposals, 1)
	assert.Equal(t, "sent", proposals[0].(map[string]interface{})["status"])
}

func TestAPI_ResendProposalDuplicates(t *testing.T) {
	token := createAuthenticatedOperator(t)
	customerID := submitTestLead(t, "Repeat Customers AG")
	serviceID := createTestService(t, token, "Repeatable Deal", "$1,000")

	body := map[string]interface{}{
		"service_ids":   []string{serviceID},
		"proposal_type": "whatsapp",
	}
	POST(t, "/api/protected/customers/"+customerID+"/proposals").
		WithToken(token).WithBody(body).Do().RequireStatus(http.StatusCreated)
	POST(t, "/api/protected/customers/"+customerID+"/proposals").
		WithToken(token).WithBody(body).Do().RequireStatus(http.StatusCreated)

	histResp := GET(t, "/api/protected/customers/"+customerID+"/proposals").WithToken(token).Do()
	histResp.RequireStatus(http.StatusOK)
	proposals, _ := histResp.JSON()["proposals"].([]interface{})
	assert.Len(t, proposals, 2, "re-sending should record a second proposal")
}

func TestAPI_SendProposalValidation(t *testing.T) {
	token := createAuthenticatedOperator(t)
	customerID := submitTestLead(t, "Validation Victims BV")

	// Empty service selection
	POST(t, "/api/protected/customers/"+customerID+"/proposals").
		WithToken(token).
		WithBody(map[string]interface{}{
			"service_ids":   []string{},
			"proposal_type": "whatsapp",
		}).
		Do().
		AssertStatus(http.StatusBadRequest).
		AssertError()

	// Unknown proposal type
	serviceID := createTestService(t, token, "Typed Deal", "$500")
	POST(t, "/api/protected/customers/"+customerID+"/proposals").
		WithToken(token).
		WithBody(map[string]interface{}{
			"service_ids":   []string{serviceID},
			"proposal_type": "fax",
		}).
		Do().
		AssertStatus(http.StatusBadRequest).
		AssertError()
}
