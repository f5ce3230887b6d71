package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_dashboard/internal/feature/candidates/domain"
	"stock_dashboard/internal/feature/candidates/domain/entity"
)

var sheetHeader = []string{"탐색일", "종목명", "코드", "수익률(%)", "현재가(Live)"}

// TestNormalize_UnresolvedSymbol は未解決の銘柄行が正しく正規化されることを検証します。
func TestNormalize_UnresolvedSymbol(t *testing.T) {
	t.Parallel()

	grid := entity.RawGrid{
		sheetHeader,
		{"2024-05-01", "ABC전자", "'00123", "12.5%", "코드확인"},
	}

	records, columns, err := Normalize(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, 12.5, r.ProfitPercent)
	assert.Equal(t, "00123", r.SymbolCode)
	assert.Equal(t, "-", r.LivePrice)
	assert.Equal(t, "2024-05-01", r.DiscoveryDate)
	assert.Equal(t, "ABC전자", r.SymbolName)
	assert.Equal(t, sheetHeader, columns)
}

// TestNormalize_NegativeProfitAndPrice は負の収益率と価格文字列がそのまま扱われることを検証します。
func TestNormalize_NegativeProfitAndPrice(t *testing.T) {
	t.Parallel()

	grid := entity.RawGrid{
		sheetHeader,
		{"2024-05-02", "XYZ", "456", "-3.2%", "13,450"},
	}

	records, _, err := Normalize(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, -3.2, records[0].ProfitPercent)
	assert.Equal(t, "13,450", records[0].LivePrice)
	assert.Equal(t, "456", records[0].SymbolCode)
}

// TestNormalize_HeaderOnly はヘッダーのみのグリッドが空のレコード列になることを検証します。
func TestNormalize_HeaderOnly(t *testing.T) {
	t.Parallel()

	records, _, err := Normalize(entity.RawGrid{sheetHeader})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

// TestNormalize_EmptyGrid は空のグリッドがエラーにならないことを検証します。
func TestNormalize_EmptyGrid(t *testing.T) {
	t.Parallel()

	records, columns, err := Normalize(entity.RawGrid{})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Nil(t, columns)
}

// TestNormalize_ShortRowsAndOptionalColumns は欠けたセルや任意列が空文字として扱われることを検証します。
func TestNormalize_ShortRowsAndOptionalColumns(t *testing.T) {
	t.Parallel()

	grid := entity.RawGrid{
		{"탐색일", "종목명", "코드", "수익률(%)", "현재가(Live)", "포착사유", "포착가"},
		{"2024-05-03", "DEF"},
		{"2024-05-04", "GHI", "'789'", "1,234.5%", "5,000", "거래량 급증", "4,800", "extra"},
	}

	records, _, err := Normalize(grid)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "", records[0].SymbolCode)
	assert.Equal(t, 0.0, records[0].ProfitPercent)
	assert.Equal(t, "", records[0].LivePrice)
	assert.Equal(t, "", records[0].CaptureReason)

	assert.Equal(t, "789", records[1].SymbolCode)
	assert.Equal(t, 1234.5, records[1].ProfitPercent)
	assert.Equal(t, "거래량 급증", records[1].CaptureReason)
	assert.Equal(t, "4,800", records[1].CapturePrice)
}

// TestNormalize_UnknownColumnsPassThrough は未知の列がCellsにそのまま残ることを検証します。
func TestNormalize_UnknownColumnsPassThrough(t *testing.T) {
	t.Parallel()

	grid := entity.RawGrid{
		{"탐색일", "메모", "종목명", "코드"},
		{"2024-05-01", "관심", "ABC", "'001'"},
	}

	records, columns, err := Normalize(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"탐색일", "메모", "종목명", "코드"}, columns)
	assert.Equal(t, "관심", records[0].Cells["메모"])
	assert.Equal(t, "'001'", records[0].Cells["코드"], "cells keep the raw value")
	assert.Equal(t, "001", records[0].SymbolCode)
}

// TestNormalize_PaddedHeaders は前後に空白を含む見出しがスキーマとCellsで同じ名前に揃うことを検証します。
func TestNormalize_PaddedHeaders(t *testing.T) {
	t.Parallel()

	grid := entity.RawGrid{
		{" 탐색일", "종목명", "코드 ", "메모  "},
		{"2024-05-01", "ABC", "'001", "관심"},
	}

	records, columns, err := Normalize(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"탐색일", "종목명", "코드", "메모"}, columns)
	assert.Equal(t, "001", records[0].SymbolCode)
	assert.Equal(t, "'001", records[0].Cells["코드"])
	assert.Equal(t, "관심", records[0].Cells["메모"])
	assert.NotContains(t, records[0].Cells, "코드 ")
	assert.Equal(t, " 탐색일", grid[0][0], "input header is left untouched")
}

// TestNormalize_MissingRequiredColumn は必須列が欠けている場合にSchemaErrorを返すことを検証します。
func TestNormalize_MissingRequiredColumn(t *testing.T) {
	t.Parallel()

	grid := entity.RawGrid{
		{"탐색일", "수익률(%)"},
		{"2024-05-01", "1%"},
	}

	_, _, err := Normalize(grid)
	var se *domain.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"종목명", "코드"}, se.Missing)
}

// TestNormalize_DoesNotMutateInput は入力グリッドが変更されないことを検証します。
func TestNormalize_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	grid := entity.RawGrid{
		{"탐색일", "종목명", "코드", "수익률(%)", "현재가(Live)"},
		{"2024-05-01", "ABC전자", "'00123", "12.5%", "코드확인"},
		{"2024-04-01", "XYZ", "'456", "3%", "1,000"},
	}
	before := make(entity.RawGrid, len(grid))
	for i, row := range grid {
		before[i] = append([]string(nil), row...)
	}

	records, columns, err := Normalize(grid)
	require.NoError(t, err)
	columns[0] = "changed"
	SortByDiscoveryDate(records, DateOrderLexical)

	assert.Equal(t, before, grid)
}

// TestParsePercent は収益率文字列の変換規則を検証します。
func TestParsePercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected float64
	}{
		{"12.5%", 12.5},
		{"-3.2%", -3.2},
		{"1,234.5%", 1234.5},
		{"1,234,567%", 1234567},
		{"0%", 0},
		{" 7.25 % ", 7.25},
		{"+4%", 4},
		{"15", 15},
		{"", 0},
		{"%", 0},
		{"abc", 0},
		{"N/A", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-", 0},
		{"12.5.1%", 0},
		{"#DIV/0!", 0},
		{"1e400%", 0},
		{"-1e400%", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expected, ParsePercent(tt.input), 1e-9)
		})
	}
}

// TestCleanSymbolCode は引用符で囲まれた銘柄コードから引用符が除去されることを検証します。
func TestCleanSymbolCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"'00123", "00123"},
		{"'00123'", "00123"},
		{"00123'", "00123"},
		{"005930", "005930"},
		{"AAPL", "AAPL"},
		{"", ""},
		{"'", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, CleanSymbolCode(tt.input))
		})
	}
}

// TestDisplayLivePrice は未解決センチネルのみがダッシュに置換されることを検証します。
func TestDisplayLivePrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", DisplayLivePrice("코드확인"))
	assert.Equal(t, "-", DisplayLivePrice(" 코드확인 "))
	assert.Equal(t, "13,450", DisplayLivePrice("13,450"))
	assert.Equal(t, "", DisplayLivePrice(""))
	assert.Equal(t, "코드확인 필요", DisplayLivePrice("코드확인 필요"))
}
