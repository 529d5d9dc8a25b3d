package game

import (
	"math/rand"
	"strings"
)

// builtinPrompts is the fallback axis pool used when the host does not
// provide a custom prompt for the round.
var builtinPrompts = []string{
	"How scary is it?",
	"How delicious is it?",
	"How useful would it be on a desert island?",
	"How famous is this person?",
	"How good does it smell?",
	"How expensive is it?",
	"How heavy is it?",
	"How romantic is it?",
	"How annoying is this sound?",
	"How badly do you want it as a superpower?",
	"How hard is it to live without?",
	"How likely is it to make you cry?",
	"How cool would it look on a t-shirt?",
	"How dangerous is this animal?",
	"How good is this pizza topping?",
	"How embarrassing would it be in public?",
	"How fun is this at a party?",
	"How overrated is it?",
	"How likely are you to find it in a kitchen?",
	"How strong does it taste?",
	"How old does it make you feel?",
	"How loud is it?",
	"How popular was it ten years ago?",
	"How happy does it make a dog?",
}

// pickPrompt uses the custom text when non-empty, otherwise a uniform random
// builtin prompt.
func pickPrompt(custom string, rng *rand.Rand) string {
	custom = strings.TrimSpace(custom)
	if custom != "" {
		return custom
	}
	return builtinPrompts[rng.Intn(len(builtinPrompts))]
}
