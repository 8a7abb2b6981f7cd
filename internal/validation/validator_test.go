package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  *string `json:"lastName,omitempty"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=4"`
}

type listing struct {
	Title string   `json:"title" validate:"required,min=2,max=70"`
	Price *float64 `json:"price" validate:"required,finite,gte=-9999999999.99,lte=9999999999.99"`
}

func TestCheck_Valid(t *testing.T) {
	v := New()

	err := v.Check(&signup{FirstName: "Ana", Email: "a@x.com", Password: "1234"})
	assert.NoError(t, err)
}

func TestCheck_CollectsEveryViolation(t *testing.T) {
	v := New()

	err := v.Check(&signup{})
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.ElementsMatch(t, []string{"firstName", "email", "password"}, verrs.Fields())
	for _, fe := range verrs {
		assert.Equal(t, "required", fe.Rule)
		assert.Contains(t, fe.Message, fe.Field)
	}
}

func TestCheck_FormatRules(t *testing.T) {
	v := New()

	err := v.Check(&signup{FirstName: "Ana", Email: "not-an-email", Password: "123"})

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "email", verrs[0].Field)
	assert.Equal(t, "email", verrs[0].Rule)
	assert.Equal(t, "password", verrs[1].Field)
	assert.Equal(t, "min", verrs[1].Rule)
	assert.Equal(t, "4", verrs[1].Param)
}

func TestCheck_LengthBoundsAndPointers(t *testing.T) {
	v := New()
	zero := 0.0
	nan := math.NaN()
	inf := math.Inf(1)
	huge := 1e10
	long := make([]byte, 71)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name   string
		in     listing
		fields []string
	}{
		{name: "too short", in: listing{Title: "a", Price: &zero}, fields: []string{"title"}},
		{name: "too long", in: listing{Title: string(long), Price: &zero}, fields: []string{"title"}},
		{name: "missing price", in: listing{Title: "ok"}, fields: []string{"price"}},
		{name: "zero price allowed", in: listing{Title: "ok", Price: &zero}},
		{name: "NaN price", in: listing{Title: "ok", Price: &nan}, fields: []string{"price"}},
		{name: "infinite price", in: listing{Title: "ok", Price: &inf}, fields: []string{"price"}},
		{name: "price beyond column", in: listing{Title: "ok", Price: &huge}, fields: []string{"price"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Check(&tt.in)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verrs Errors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.fields, verrs.Fields())
		})
	}
}

func TestCheck_FiniteRule(t *testing.T) {
	v := New()
	nan := math.NaN()

	err := v.Check(&listing{Title: "ok", Price: &nan})

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "finite", verrs[0].Rule)
	assert.Equal(t, "price must be a finite number", verrs[0].Message)
}

func TestCheck_PanicsOnMisuse(t *testing.T) {
	v := New()

	assert.Panics(t, func() {
		_ = v.Check("not a struct")
	})
}

func TestErrors_Error(t *testing.T) {
	e := Errors{{Message: "a is required"}, {Message: "b is required"}}
	assert.Equal(t, "a is required; b is required", e.Error())
}
