package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Direction
		wantErr bool
	}{
		{"debit", "Debit", DirectionDebit, false},
		{"credit", "Credit", DirectionCredit, false},
		{"lowercase is rejected", "debit", "", true},
		{"uppercase is rejected", "DEBIT", "", true},
		{"empty", "", "", true},
		{"unknown token", "Refund", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportResultString(t *testing.T) {
	result := ImportResult{Imported: 3, Duplicates: 2}
	assert.Equal(t, "Imported new transactions: 3\nSkipped duplicate transactions: 2", result.String())

	empty := ImportResult{}
	assert.Equal(t, "Imported new transactions: 0\nSkipped duplicate transactions: 0", empty.String())
}
