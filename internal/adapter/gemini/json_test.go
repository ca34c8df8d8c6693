package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var v map[string]interface{}

	assert.True(t, decodeJSON(`{"full_name": "Jane"}`, &v))
	assert.Equal(t, "Jane", v["full_name"])

	v = nil
	assert.True(t, decodeJSON("```json\n{\"email\": \"jane@example.com\"}\n```", &v))
	assert.Equal(t, "jane@example.com", v["email"])

	v = nil
	assert.True(t, decodeJSON(`Sure! Here is the data: {"phone": "123"} hope that helps`, &v))
	assert.Equal(t, "123", v["phone"])

	assert.False(t, decodeJSON("no json here", &v))
	assert.False(t, decodeJSON("", &v))
}

func TestCoercePatch(t *testing.T) {
	raw := map[string]interface{}{
		"full_name":        "  Jane Doe  ",
		"email":            "jane@example.com",
		"years_experience": "5.5", // number as string
		"desired_positions": []interface{}{
			"Backend Engineer", "", "SRE",
		},
		"tech_stack": map[string]interface{}{
			"programming_languages": []interface{}{"Go"},
			"databases":             "PostgreSQL", // single value instead of list
		},
	}

	u := coercePatch(raw)
	assert.Equal(t, "Jane Doe", u.FullName)
	assert.Equal(t, "jane@example.com", u.Email)
	require.NotNil(t, u.YearsExperience)
	assert.Equal(t, 5.5, *u.YearsExperience)
	assert.Equal(t, []string{"Backend Engineer", "SRE"}, u.DesiredPositions)
	require.NotNil(t, u.TechStack)
	assert.Equal(t, []string{"Go"}, u.TechStack["programming_languages"])
	assert.Equal(t, []string{"PostgreSQL"}, u.TechStack["databases"])
}

func TestCoercePatchDropsZeroYears(t *testing.T) {
	u := coercePatch(map[string]interface{}{"years_experience": float64(0)})
	assert.Nil(t, u.YearsExperience)

	u = coercePatch(map[string]interface{}{"years_experience": "not a number"})
	assert.Nil(t, u.YearsExperience)
	assert.True(t, u.Empty())
}
