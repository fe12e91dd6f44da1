package bot

// Callback data prefixes. Telegram limits callback data to 64 bytes.
const (
	callbackService   = "svc:"
	callbackAttribute = "attr:"
	callbackNav       = "nav:"
)

const (
	navNext     = "next"
	navBack     = "back"
	navCheckout = "checkout"
	navExport   = "xlsx"
)

const (
	commandStart  = "start"
	commandHelp   = "help"
	commandCancel = "cancel"
)

// Checkout outcomes for metrics.
const (
	checkoutOK       = "ok"
	checkoutFailed   = "error"
	checkoutDisabled = "disabled"
)

var quickLengths = []int{25, 30, 35, 40, 45, 50, 55, 60}

const maxAnodeButtons = 6
