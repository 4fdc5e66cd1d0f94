package preset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuiltinValid(t *testing.T) {
	for _, p := range Builtin() {
		require.NoError(t, Validate(p), p.Name)
	}
	require.NoError(t, Validate(Custom([]string{"pizza", "sushi"})))
}

func TestBuiltinSettings(t *testing.T) {
	cat := NewCatalog(Builtin()...)

	coin, ok := cat.Lookup("")
	require.True(t, ok)
	assert.Equal(t, "coin", coin.Name)
	assert.True(t, coin.AutoStart())
	assert.Zero(t, coin.DelayDuration())

	yes, ok := cat.Lookup("yes")
	require.True(t, ok)
	assert.False(t, yes.AutoStart())
	assert.Equal(t, 500*time.Millisecond, yes.DelayDuration())
	assert.Equal(t, []string{"yes"}, yes.Choices)

	_, ok = cat.Lookup("dice")
	assert.False(t, ok)

	var menu []string
	for _, p := range cat.Menu() {
		menu = append(menu, p.Menu)
	}
	assert.Equal(t, []string{"Coin", "Yes / No", "Compass"}, menu)
}

func TestFinishFor(t *testing.T) {
	coin := Builtin()[0]
	assert.Equal(t, ClassAndText{Text: "Heads", Class: "finish"}, coin.Texts.FinishFor("head"))
	// unknown result falls back to the raw value
	assert.Equal(t, ClassAndText{Text: "edge"}, coin.Texts.FinishFor("edge"))

	custom := Custom([]string{"pizza"})
	assert.Equal(t, ClassAndText{Text: "pizza", Class: "finish"}, custom.Texts.FinishFor("pizza"))
}

func TestValidate(t *testing.T) {
	neg := Duration(-time.Second)
	err := Validate(Preset{
		Name:    "broken",
		Choices: []string{"a", " "},
		Delay:   &neg,
		Texts:   Texts{Finish: map[string]ClassAndText{"a": {Text: "A"}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `choices[1] must not be blank`)
	assert.Contains(t, err.Error(), `delay must be >= 0`)
	assert.Contains(t, err.Error(), `no entry for choice " "`)

	err = Validate(Preset{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "choices must not be empty")
}

func TestDurationYAML(t *testing.T) {
	var p Preset
	require.NoError(t, yaml.Unmarshal([]byte("name: x\ndelay: 750ms\n"), &p))
	assert.Equal(t, 750*time.Millisecond, p.DelayDuration())

	out, err := yaml.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), "delay: 750ms")

	err = yaml.Unmarshal([]byte("name: x\ndelay: soon\n"), &p)
	assert.Error(t, err)
}

func TestOverrides(t *testing.T) {
	d := 2 * time.Second
	auto := true
	base := Builtin()[3] // yes
	got := Overrides{Delay: &d, Auto: &auto}.Apply(base)

	assert.Equal(t, d, got.DelayDuration())
	assert.True(t, got.AutoStart())
	// original untouched
	assert.False(t, base.AutoStart())
	assert.Equal(t, 500*time.Millisecond, base.DelayDuration())
}
