package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"credit-score-lab/internal/domain"
)

func TestDeduplicate_KeepsFirstOccurrence(t *testing.T) {
	records := []domain.CustomerRecord{
		{CustomerID: "CLI00002", Age: 20},
		{CustomerID: "CLI00001", Age: 30},
		{CustomerID: "CLI00002", Age: 99},
		{CustomerID: "CLI00003", Age: 40},
		{CustomerID: "CLI00001", Age: 98},
	}

	kept, dropped := Deduplicate(records)

	assert.Equal(t, 2, dropped)
	assert.Equal(t, []domain.CustomerRecord{
		{CustomerID: "CLI00002", Age: 20},
		{CustomerID: "CLI00001", Age: 30},
		{CustomerID: "CLI00003", Age: 40},
	}, kept)
}

func TestDeduplicate_NoDuplicates(t *testing.T) {
	records := []domain.CustomerRecord{{CustomerID: "a"}, {CustomerID: "b"}}

	kept, dropped := Deduplicate(records)

	assert.Zero(t, dropped)
	assert.Equal(t, records, kept)
}
