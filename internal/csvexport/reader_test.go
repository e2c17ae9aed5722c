package csvexport

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `Name,JANE DOE
Address,1 MAIN ST
Account Number,123456789
Service,Electric service

SERVICE,DATE,START TIME,END TIME,USAGE,UNITS,NOTES
Electric usage,01/15/2024,07:00,07:59,0.25,kWh,
Electric usage,01/15/2024,08:00,08:59,0.50,kWh,
Electric usage,07/04/2024,12:00,12:59,1.75,kWh,
`

func TestReadParsesMetadataAndReadings(t *testing.T) {
	export, err := Read(strings.NewReader(sampleExport))
	require.NoError(t, err)

	assert.Equal(t, "JANE DOE", export.Account.Name)
	assert.Equal(t, "1 MAIN ST", export.Account.Address)
	assert.Equal(t, "123456789", export.Account.AccountNumber)

	require.Len(t, export.Readings, 3)
	assert.Equal(t, time.Date(2024, time.January, 15, 7, 0, 0, 0, time.UTC), export.Readings[0].Timestamp)
	assert.InDelta(t, 0.25, export.Readings[0].KWh, 1e-9)
	assert.Equal(t, time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC), export.Readings[2].Timestamp)
	assert.InDelta(t, 1.75, export.Readings[2].KWh, 1e-9)
}

func TestReadConvertsWattHours(t *testing.T) {
	input := `Name,JANE DOE
SERVICE,DATE,START TIME,END TIME,USAGE,UNITS,NOTES
Electric usage,01/15/2024,07:00,07:14,250,Wh,
`
	export, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, export.Readings, 1)
	assert.InDelta(t, 0.25, export.Readings[0].KWh, 1e-9)
}

func TestReadAcceptsTypeHeaderVariant(t *testing.T) {
	input := `TYPE,DATE,START TIME,END TIME,USAGE,UNITS,NOTES
Electric usage,03/01/2024,17:30,17:44,0.10,kWh,
`
	export, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, export.Readings, 1)
	assert.Equal(t, 17, export.Readings[0].Timestamp.Hour())
}

func TestReadMissingHeaderRow(t *testing.T) {
	input := `Name,JANE DOE
Address,1 MAIN ST
`
	_, err := Read(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header row")
}

func TestReadMalformedTimestamp(t *testing.T) {
	input := `SERVICE,DATE,START TIME,END TIME,USAGE,UNITS,NOTES
Electric usage,not-a-date,07:00,07:14,0.25,kWh,
`
	_, err := Read(strings.NewReader(input))
	require.Error(t, err)

	var malformed *MalformedReadingError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
	assert.Equal(t, "timestamp", malformed.Field)
}

func TestReadMalformedUsage(t *testing.T) {
	input := `SERVICE,DATE,START TIME,END TIME,USAGE,UNITS,NOTES
Electric usage,01/15/2024,07:00,07:14,,kWh,
Electric usage,01/15/2024,07:15,07:29,0.25,kWh,
`
	_, err := Read(strings.NewReader(input))
	require.Error(t, err)

	var malformed *MalformedReadingError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "usage", malformed.Field)
}

func TestReadEmptyDataSection(t *testing.T) {
	input := `Name,JANE DOE
SERVICE,DATE,START TIME,END TIME,USAGE,UNITS,NOTES
`
	export, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, export.Readings)
}
