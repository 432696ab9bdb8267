// Package web renders the storefront HTML views.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dtroode/storefront/internal/model"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Pages lists every view the renderer knows.
var Pages = []string{
	"shop/index",
	"shop/product",
	"shop/cart",
	"shop/checkout",
	"shop/orders",
	"admin/products",
	"admin/edit-product",
	"auth/login",
	"auth/signup",
	"auth/reset",
	"auth/new-password",
	"errors/404",
	"errors/500",
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
	"mul": func(d decimal.Decimal, n int) decimal.Decimal {
		return d.Mul(decimal.NewFromInt(int64(n)))
	},
}

// Page is the data every view receives.
type Page struct {
	Title     string
	Path      string
	User      *model.User
	CSRFField template.HTML
	Error     string
	Notice    string
	Data      any
}

func (p Page) IsAuthenticated() bool {
	return p.User != nil
}

// ProductList backs the shop index, search and seller pages.
type ProductList struct {
	Heading  string
	Keyword  string
	BasePath string
	Result   model.ProductPage
}

// PageLink returns the URL of page n keeping the search keyword.
func (l ProductList) PageLink(n int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(n))
	if l.Keyword != "" {
		q.Set("keyword", l.Keyword)
	}
	return l.BasePath + "?" + q.Encode()
}

// ProductForm backs the add and edit product page.
type ProductForm struct {
	Editing bool
	Product model.Product
	Input   model.ProductInput
}

// Checkout backs the checkout page.
type Checkout struct {
	Summary model.CheckoutSummary
	Form    model.PlaceOrderParams
}

// AuthForm backs the login, signup and password pages.
type AuthForm struct {
	Email string
	Token string
}

// Renderer executes parsed views inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded views.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, name := range Pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse view %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the named view. Output is buffered so a template error does
// not leave a half-written page.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %s", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("failed to render view %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
