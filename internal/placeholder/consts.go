package placeholder

const (
	tokenRegexp = `\{[^}]+\}`

	contextTrigger = "YEAR LAST ATTENDED"
)

// Context labels, checked in this order.
const (
	ContextElementary = "ELEMENTARY"
	ContextSecondary  = "SECONDARY"
	ContextTertiary   = "TERTIARY"
)

var contextLabels = []string{
	ContextElementary,
	ContextSecondary,
	ContextTertiary,
}
