package pagecontentcmd

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const resolvePageMessageType = "pagecontent.resolve_page"

// ResolvePageCommand runs the content pipeline for a single page URI and
// hands the resulting PageContent to the handler sink.
type ResolvePageCommand struct {
	// URI locates the page source, e.g. classpath:docs/home.md.
	URI string `json:"uri"`
	// LinkPrefix is prepended to relative links of markdown sources.
	LinkPrefix string `json:"link_prefix,omitempty"`
	// PageTitle names the page being rendered.
	PageTitle string `json:"page_title,omitempty"`
	// SpaceKey identifies the owning site.
	SpaceKey string `json:"space_key,omitempty"`
	// IgnoreVariables disables link prefixing for the page.
	IgnoreVariables bool `json:"ignore_variables,omitempty"`
	// ModelPageTitle is the title of the model page, if any.
	ModelPageTitle string `json:"model_page_title,omitempty"`
}

// Type implements command.Message.
func (ResolvePageCommand) Type() string { return resolvePageMessageType }

// Validate ensures the URI parses and carries a scheme before handlers execute.
func (cmd ResolvePageCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.URI, validation.Required, validation.By(func(value any) error {
			raw := strings.TrimSpace(value.(string))
			u, err := url.Parse(raw)
			if err != nil {
				return validation.NewError("pagecontent.resolve_page.uri_invalid", "uri is not parseable")
			}
			if u.Scheme == "" {
				return validation.NewError("pagecontent.resolve_page.scheme_required", "uri must carry a scheme")
			}
			return nil
		})),
	)
}
