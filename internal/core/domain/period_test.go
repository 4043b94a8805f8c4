package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Period
		wantErr bool
	}{
		{name: "valid period", input: "2024-03", want: domain.Period{Year: 2024, Month: 3}},
		{name: "december", input: "2023-12", want: domain.Period{Year: 2023, Month: 12}},
		{name: "month out of range", input: "2024-13", wantErr: true},
		{name: "missing month", input: "2024", wantErr: true},
		{name: "wrong separator", input: "2024/03", wantErr: true},
		{name: "full date rejected", input: "2024-03-15", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePeriod(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_String(t *testing.T) {
	assert.Equal(t, "2024-03", domain.Period{Year: 2024, Month: 3}.String())
	assert.Equal(t, "2023-12", domain.Period{Year: 2023, Month: 12}.String())
}

func TestPeriod_Contains(t *testing.T) {
	period := domain.Period{Year: 2024, Month: 3}

	assert.True(t, period.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)))
}

func TestPeriod_JSONRoundTrip(t *testing.T) {
	period := domain.Period{Year: 2024, Month: 3}

	data, err := json.Marshal(period)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03"`, string(data))

	var decoded domain.Period
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, period, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"2024-3-1"`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`42`), &decoded))
}
