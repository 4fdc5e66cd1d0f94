package preset

import (
	"time"
)

// DefaultName is the preset served when no name is given.
const DefaultName = "coin"

func boolPtr(b bool) *bool { return &b }

func durationPtr(d time.Duration) *Duration {
	v := Duration(d)
	return &v
}

// Builtin returns the stock presets, in menu order.
func Builtin() []Preset {
	return []Preset{
		{
			Name:    "coin",
			Title:   "Flip (a coin) for everyone",
			Menu:    "Coin",
			Choices: []string{"head", "tail"},
			Texts: Texts{
				Extra: ClassAndText{Text: "Click to flip"},
				Init:  ClassAndText{Text: "Flipping", Class: "init"},
				Delay: ClassAndText{Text: "Flipping", Class: "delay"},
				Finish: map[string]ClassAndText{
					"head": {Text: "Heads", Class: "finish"},
					"tail": {Text: "Tails", Class: "finish"},
				},
			},
		},
		{
			Name:    "yesno",
			Title:   "Decide for everyone",
			Menu:    "Yes / No",
			Choices: []string{"yes", "no"},
			Texts: Texts{
				Extra: ClassAndText{Text: "Click to decide"},
				Init:  ClassAndText{Text: "Deciding", Class: "init"},
				Delay: ClassAndText{Text: "Deciding", Class: "delay"},
				Finish: map[string]ClassAndText{
					"yes": {Text: "Yes", Class: "yes"},
					"no":  {Text: "No", Class: "no"},
				},
			},
		},
		{
			Name:    "compass",
			Title:   "Orient everyone",
			Menu:    "Compass",
			Choices: []string{"north", "east", "south", "west"},
			Texts: Texts{
				Extra: ClassAndText{Text: "Click to orient"},
				Init:  ClassAndText{Text: "Orienting", Class: "init"},
				Delay: ClassAndText{Text: "Orienting", Class: "delay"},
				Finish: map[string]ClassAndText{
					"north": {Text: "North", Class: "north"},
					"east":  {Text: "East", Class: "east"},
					"south": {Text: "South", Class: "south"},
					"west":  {Text: "West", Class: "west"},
				},
			},
		},
		{
			Name:    "yes",
			Title:   "Yes?",
			Auto:    boolPtr(false),
			Delay:   durationPtr(500 * time.Millisecond),
			Choices: []string{"yes"},
			Texts: Texts{
				Extra:  ClassAndText{Text: "Click to decide", Class: "yes"},
				Init:   ClassAndText{Text: "Yes?"},
				Delay:  ClassAndText{Text: "Yes?"},
				Finish: map[string]ClassAndText{"yes": {Text: "Yes", Class: "yes"}},
			},
		},
		{
			Name:    "no",
			Title:   "No?",
			Auto:    boolPtr(false),
			Delay:   durationPtr(500 * time.Millisecond),
			Choices: []string{"no"},
			Texts: Texts{
				Extra:  ClassAndText{Text: "Click to decide", Class: "no"},
				Init:   ClassAndText{Text: "No?"},
				Delay:  ClassAndText{Text: "No?"},
				Finish: map[string]ClassAndText{"no": {Text: "No", Class: "no"}},
			},
		},
	}
}

// Custom builds an ad-hoc preset over a user supplied list.
func Custom(choices []string) Preset {
	return Preset{
		Name:    "custom",
		Title:   "Pick for everyone",
		Choices: append([]string(nil), choices...),
		Texts: Texts{
			Extra:         ClassAndText{Text: "Click to pick"},
			Init:          ClassAndText{Text: "Picking", Class: "init"},
			Delay:         ClassAndText{Text: "Picking", Class: "delay"},
			FinishDefault: &ClassAndText{Class: "finish"},
		},
	}
}
