package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopServicesQuery_RanksBySummedUnitPrice(t *testing.T) {
	assert.Contains(t, topServicesQuery, "SUM(unit_price) AS price")
	assert.NotContains(t, topServicesQuery, "quantity")
}

func TestTopCustomersQuery_RanksBySummedTotalAmount(t *testing.T) {
	assert.Contains(t, topCustomersQuery, "SUM(i.total_amount) AS amount")
}

func TestLineItemsQuery_PreservesDocumentOrder(t *testing.T) {
	assert.True(t, strings.HasSuffix(lineItemsQuery, "ORDER BY position ASC"))
}
