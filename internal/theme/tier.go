package theme

// Tier is a discrete intensity level for a day's count.
type Tier int

const (
	TierMuted Tier = iota
	TierDarkest
	TierDark
	TierMedium
	TierBrightest
)

var tierNames = map[Tier]string{
	TierMuted:     "muted",
	TierDarkest:   "darkest",
	TierDark:      "dark",
	TierMedium:    "medium",
	TierBrightest: "brightest",
}

// TierFor maps a count to its tier. Counts of zero or less are muted and
// counts of four or more are brightest.
func TierFor(count int) Tier {
	switch {
	case count <= 0:
		return TierMuted
	case count >= int(TierBrightest):
		return TierBrightest
	default:
		return Tier(count)
	}
}

func (t Tier) String() string {
	return tierNames[t]
}
