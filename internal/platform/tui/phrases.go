package tui

import "math/rand"

// phraseChance is the per-frame probability of a street phrase.
const phraseChance = 0.001

var phrases = map[string][]string{
	"mild": {
		"Motá se fízl na ocase, přidej!",
		"Brčko na cestě, drž lajnu vpravo!",
		"Sáček ve větru - změň pruh!",
		"Neviditelnej? Tak dělej!",
		"Holubi všude, pozor na hlavy!",
		"Karta na zemi, opatrně!",
	},
	"spicy": {
		"Dej šlápnout, a ne do kyble!",
		"Karta píchá, skluzem to obejdi!",
		"Injekce před tebou, přeskoč a žij!",
		"Holubi na tripu, nesnaž se jim vysvětlit fyziku!",
		"Majáky v zrcátku. Hraj mrtvýho brouka? Radši ne.",
		"Brčko klouzavé jak tvoje morálka!",
	},
}

// Phrase picks a random phrase for the spice level, falling back to mild.
func Phrase(spice string, r *rand.Rand) string {
	list, ok := phrases[spice]
	if !ok {
		list = phrases["mild"]
	}
	return list[r.Intn(len(list))]
}

// Say shows a free-form message for the given epoch.
func (t *Toasts) Say(epoch uint64, text string) {
	t.items = append(t.items, Toast{Text: text, epoch: epoch, ttl: 2 * toastLife})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
}
