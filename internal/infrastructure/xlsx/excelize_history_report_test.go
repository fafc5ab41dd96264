package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

func TestGenerateHistoryReport(t *testing.T) {
	item := &entity.Item{ID: 1, Name: "Tornillo", SKU: "TOR-1", Unit: "pcs", Stock: 7}
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	movements := []*entity.Movement{
		{ID: 2, ItemID: 1, Quantity: 3, MovementType: entity.MovementTypeOUT, InsertedAt: at.Add(time.Hour)},
		{ID: 1, ItemID: 1, Quantity: 10, MovementType: entity.MovementTypeIN, InsertedAt: at},
	}

	content, err := NewExcelizeHistoryReport().GenerateHistoryReport(context.Background(), item, movements)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	name, _ := f.GetCellValue(sheetName, "B1")
	assert.Equal(t, "Tornillo (TOR-1)", name)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"ID", "Date", "Type", "Quantity", "Effect"}, rows[3])
	assert.Equal(t, []string{"2", "2024-03-01 11:00:00", "OUT", "3", "-3"}, rows[4])
	assert.Equal(t, []string{"1", "2024-03-01 10:00:00", "IN", "10", "10"}, rows[5])
}
