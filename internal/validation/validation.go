package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nahidhasan98/script-drift/internal/document"
	"github.com/nahidhasan98/script-drift/internal/errors"
	"github.com/nahidhasan98/script-drift/internal/models"
)

// MaxLocatorLength bounds a locator accepted over the API
const MaxLocatorLength = 2048

// WhatsApp JID patterns
var (
	// number@s.whatsapp.net
	individualJIDPattern = regexp.MustCompile(`^\d{10,15}@s\.whatsapp\.net$`)

	// groupid@g.us, optionally the legacy creator-timestamp form
	groupJIDPattern = regexp.MustCompile(`^\d+(-\d+)?@g\.us$`)

	scriptNamePattern = regexp.MustCompile(`^[\w .()-]{1,100}$`)
)

// Validator provides validation methods
type Validator struct{}

// New creates a new validator instance
func New() *Validator {
	return &Validator{}
}

// ValidateCompareRequest checks that exactly one of script or the
// baseline/live pair is given, and that remote locators are well formed
func (v *Validator) ValidateCompareRequest(req *models.CompareRequest) *errors.AppError {
	if req == nil {
		return errors.InvalidRequest("Request body is required")
	}

	req.Script = strings.TrimSpace(req.Script)
	req.Baseline = strings.TrimSpace(req.Baseline)
	req.Live = strings.TrimSpace(req.Live)

	hasPair := req.Baseline != "" || req.Live != ""
	switch {
	case req.Script != "" && hasPair:
		return errors.ValidationError("Give either 'script' or 'baseline' and 'live', not both")
	case req.Script != "":
		if !scriptNamePattern.MatchString(req.Script) {
			return errors.ValidationError("Invalid 'script' name")
		}
		return nil
	case !hasPair:
		return errors.ValidationError("'script' or 'baseline' and 'live' are required")
	}

	if err := v.ValidateLocator("baseline", req.Baseline); err != nil {
		return err
	}
	return v.ValidateLocator("live", req.Live)
}

// ValidateLocator accepts http(s) and github locators only. Local files are
// not reachable through the API.
func (v *Validator) ValidateLocator(field, locator string) *errors.AppError {
	if locator == "" {
		return errors.ValidationError("'" + field + "' field is required")
	}
	if len(locator) > MaxLocatorLength {
		return errors.ValidationError("'" + field + "' locator is too long")
	}

	if strings.HasPrefix(locator, document.GitHubScheme) {
		if _, err := document.ParseGitHubLocator(locator); err != nil {
			return errors.ValidationError("Invalid '" + field + "' locator: " + err.Error())
		}
		return nil
	}

	u, err := url.Parse(locator)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.ValidationError("'" + field + "' must be an http(s) or github:// locator")
	}
	return nil
}

// IsValidJID checks if a JID is a user or group in WhatsApp format
func (v *Validator) IsValidJID(jid string) bool {
	jid = strings.TrimSpace(jid)
	return individualJIDPattern.MatchString(jid) || groupJIDPattern.MatchString(jid)
}

// ValidateRecipient checks the configured notification recipient
func (v *Validator) ValidateRecipient(jid string) *errors.AppError {
	if !v.IsValidJID(jid) {
		return errors.InvalidJID(jid)
	}
	return nil
}
