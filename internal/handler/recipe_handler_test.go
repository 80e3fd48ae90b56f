package handler

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/deeecoderrr/recipe-app-api/internal/errors"
)

func TestCreateRecipeRequest_Validation(t *testing.T) {
	v := validator.New()

	price := decimal.NewFromFloat(5.50)
	zeroPrice := decimal.Zero
	minutes := 30
	zeroMinutes := 0

	tests := []struct {
		name    string
		req     CreateRecipeRequest
		wantErr bool
	}{
		{
			name:    "complete payload",
			req:     CreateRecipeRequest{Title: "Cake", TimeMinutes: &minutes, Price: &price},
			wantErr: false,
		},
		{
			name:    "missing price rejected",
			req:     CreateRecipeRequest{Title: "Cake", TimeMinutes: &minutes},
			wantErr: true,
		},
		{
			name:    "missing time_minutes rejected",
			req:     CreateRecipeRequest{Title: "Cake", Price: &price},
			wantErr: true,
		},
		{
			name:    "missing title rejected",
			req:     CreateRecipeRequest{TimeMinutes: &minutes, Price: &price},
			wantErr: true,
		},
		{
			// Zero is a legitimate value, distinct from an absent field.
			name:    "zero time_minutes accepted",
			req:     CreateRecipeRequest{Title: "Raw Salad", TimeMinutes: &zeroMinutes, Price: &price},
			wantErr: false,
		},
		{
			name:    "zero price accepted",
			req:     CreateRecipeRequest{Title: "Water", TimeMinutes: &minutes, Price: &zeroPrice},
			wantErr: false,
		},
		{
			name: "nested tag without name rejected",
			req: CreateRecipeRequest{
				Title:       "Cake",
				TimeMinutes: &minutes,
				Price:       &price,
				Tags:        []NamedInput{{Name: ""}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []uint
		wantErr  bool
	}{
		{"empty parameter", "", nil, false},
		{"single id", "3", []uint{3}, false},
		{"multiple ids", "1,2,3", []uint{1, 2, 3}, false},
		{"whitespace tolerated", " 1, 2 ,3 ", []uint{1, 2, 3}, false},
		{"non-numeric element", "1,abc", nil, true},
		{"negative id", "-1", nil, true},
		{"trailing comma", "1,2,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := parseIDList(tt.raw)
			if tt.wantErr {
				assert.Equal(t, errors.ErrInvalidFilter, err)
				assert.Nil(t, ids)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, ids)
			}
		})
	}
}
