package errors

import (
	"fmt"
	"io"
	"strings"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "assethelper looks for assethelper.json, assethelper.yaml or assethelper.yml in the working directory unless --config is given.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file could not be read",
		Detail:   "The file exists but reading or parsing it failed.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Configuration file could not be written",
		Detail:   "The configuration was valid but saving it failed.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Configuration files must end in .json, .yaml or .yml.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Configuration file already exists",
		Detail:   "init does not overwrite an existing assethelper.json, assethelper.yaml or assethelper.yml.",
	},

	// ============================================
	// Validation Errors (E110-E119)
	// ============================================

	"E110": {
		Category: CategoryValidation,
		Message:  "Document root is required",
		Detail:   "The document root is the filesystem directory served at \"/\". Timestamps are read relative to it.",
	},
	"E111": {
		Category: CategoryValidation,
		Message:  "Asset host names zero shards",
		Detail:   "A placeholder of [0] cannot select a host. Use [N] with N of at least 1, or [] to pick the host by asset type.",
	},
	"E112": {
		Category: CategoryValidation,
		Message:  "Theme mode requires a theme root",
		Detail:   "In theme mode relative references resolve under the theme directory, so it must be set.",
	},
	"E113": {
		Category: CategoryValidation,
		Message:  "Unknown asset category",
		Detail:   "Subdirectory overrides are keyed by css, js or img.",
	},
	"E114": {
		Category: CategoryValidation,
		Message:  "Subdirectory must start with a slash",
		Detail:   "Subdirectories are joined to the document root and to URLs, so a non-empty override must begin with \"/\".",
	},
	"E115": {
		Category: CategoryValidation,
		Message:  "Invalid stamp cache TTL",
		Detail:   "stampCache.ttl must be a Go duration such as \"5s\" and not negative.",
	},
	"E116": {
		Category: CategoryValidation,
		Message:  "S3 bucket is required",
		Detail:   "An s3 section without a bucket cannot supply timestamps.",
	},
	"E117": {
		Category: CategoryValidation,
		Message:  "Configuration is invalid",
		Detail:   "check lists every problem above. Fix them and run check again.",
	},

	// ============================================
	// CLI Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryCLI,
		Message:  "Invalid asset type",
		Detail:   "Asset types are css, js or img.",
	},
	"E121": {
		Category: CategoryCLI,
		Message:  "Output could not be written",
	},
	"E122": {
		Category: CategoryCLI,
		Message:  "S3 client could not be created",
		Detail:   "Loading the AWS configuration from the environment failed.",
	},
	"E123": {
		Category: CategoryCLI,
		Message:  "Unknown error code",
		Detail:   "Codes run from E100 to E123. Each error printed by assethelper starts with its code.",
	},
}

// Lookup returns the template registered for code. Codes are matched
// case-insensitively.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[strings.ToUpper(code)]
	return t, ok
}

// Explain writes the registered message and detail for code to w.
func Explain(w io.Writer, code string) error {
	t, ok := Lookup(code)
	if !ok {
		return New("E123").WithField(code)
	}
	fmt.Fprintf(w, "%s: %s\n", strings.ToUpper(code), t.Message)
	fmt.Fprintf(w, "  category: %s\n", t.Category)
	if t.Detail != "" {
		fmt.Fprintln(w)
		for _, line := range wrapText(t.Detail, 70) {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}
