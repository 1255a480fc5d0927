package model_test

import (
	"testing"

	"inventario/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		code string
		want model.Category
		ok   bool
	}{
		{"tools", model.CategoryTools, true},
		{"paints", model.CategoryPaints, true},
		{"materials", model.CategoryMaterials, true},
		//旧コード
		{"herramientas", model.CategoryTools, true},
		{"pinturas", model.CategoryPaints, true},
		{"materiales", model.CategoryMaterials, true},
		//未知のコードは黙ってデフォルトにしない
		{"electronics", "", false},
		{"", "", false},
		{"TOOLS", "", false},
	}

	for _, tc := range cases {
		got, err := model.ParseCategory(tc.code)
		if tc.ok {
			assert.NoError(t, err, tc.code)
			assert.Equal(t, tc.want, got, tc.code)
		} else {
			assert.ErrorIs(t, err, model.ErrUnknownCategory, tc.code)
		}
	}
}

// Validは正規コードのみ。旧コードはParse経由でないと通らない
func TestEnumValid(t *testing.T) {
	for _, c := range model.Categories() {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, model.Category("herramientas").Valid())
	assert.False(t, model.Category("").Valid())

	assert.True(t, model.ActionEntry.Valid())
	assert.True(t, model.ActionExit.Valid())
	assert.True(t, model.ActionDeletion.Valid())
	assert.False(t, model.MovementAction("entrada").Valid())
	assert.False(t, model.MovementAction("").Valid())
}

func TestCategoryLegacyCodeRoundTrip(t *testing.T) {
	for _, c := range model.Categories() {
		parsed, err := model.ParseCategory(c.LegacyCode())
		assert.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestParseMovementAction(t *testing.T) {
	cases := []struct {
		code string
		want model.MovementAction
		ok   bool
	}{
		{"entry", model.ActionEntry, true},
		{"exit", model.ActionExit, true},
		{"deletion", model.ActionDeletion, true},
		{"entrada", model.ActionEntry, true},
		{"salida", model.ActionExit, true},
		{"eliminacion", model.ActionDeletion, true},
		{"transfer", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, err := model.ParseMovementAction(tc.code)
		if tc.ok {
			assert.NoError(t, err, tc.code)
			assert.Equal(t, tc.want, got, tc.code)
		} else {
			assert.ErrorIs(t, err, model.ErrUnknownAction, tc.code)
		}
	}
}

func TestIsLowStock(t *testing.T) {
	min := int64(5)

	assert.True(t, model.InventoryItem{Quantity: 3, MinStock: &min}.IsLowStock())
	assert.True(t, model.InventoryItem{Quantity: 5, MinStock: &min}.IsLowStock())
	assert.False(t, model.InventoryItem{Quantity: 6, MinStock: &min}.IsLowStock())
	assert.False(t, model.InventoryItem{Quantity: 0}.IsLowStock())
}
