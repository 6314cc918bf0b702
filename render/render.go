package render

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/superchain-meme/launchpad/contracts"
	"github.com/superchain-meme/launchpad/core"
	"github.com/superchain-meme/launchpad/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"date":   FormatDate,
	"supply": FormatSupply,
}).ParseFS(templatesFS, "templates/*.html"))

type Page struct {
	Tokens          []types.Token
	Notifications   []core.Notification
	WalletConnected bool
	Deploying       bool
	// form values shown in the inputs
	Name   string
	Symbol string
}

// LaunchList writes the token list in the given order.
func LaunchList(w io.Writer, tokens []types.Token) error {
	return templates.ExecuteTemplate(w, "launches", tokens)
}

func RenderPage(w io.Writer, page Page) error {
	return templates.ExecuteTemplate(w, "page.html", page)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006")
}

// FormatSupply converts a base unit amount to whole tokens with thousands separators.
// Unparsable input is returned as is.
func FormatSupply(supply string) string {
	amount, err := decimal.NewFromString(supply)
	if err != nil {
		return supply
	}
	units := amount.Shift(-contracts.TokenDecimals)
	whole := units.Truncate(0)
	res := humanize.BigComma(whole.BigInt())
	if fraction := units.Sub(whole); !fraction.IsZero() {
		res += strings.TrimPrefix(fraction.Abs().String(), "0")
	}
	return res
}
