package ingestion

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Platform is a job board whose markup we recognize
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

var noiseSelectors = strings.Join([]string{
	"nav", "footer", "header", "script", "style", "noscript", "form",
	".ad", ".advertisement", ".ads", ".sidebar", ".cookie-banner", ".cookie-consent", ".popup",
	"#application-form", ".application-form", ".apply-button-container",
	".eeo-statement", ".voluntary-disclosure", ".social-share", ".share-buttons",
}, ", ")

var genericSelectors = []string{
	".job-description",
	".job-details",
	"#job-description",
	"[data-automation-id='jobDescription']",
	"main",
	"article",
	".content",
	"#content",
}

// platformSelectors are tried before the generic ones
var platformSelectors = map[Platform][]string{
	PlatformGreenhouse: {".job__description.body", ".job__description", ".job-description__content", ".job-post-container"},
	PlatformLever:      {".posting-page", ".section-wrapper.page-full-width", ".posting-description"},
	PlatformWorkday:    {"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"},
}

// DetectPlatform guesses the job board from markers left in the page
func DetectPlatform(doc *goquery.Document) Platform {
	switch {
	case doc.Find(".job__description, #app_body, [data-source='greenhouse']").Length() > 0:
		return PlatformGreenhouse
	case doc.Find(".posting-page, .posting-headline").Length() > 0:
		return PlatformLever
	case doc.Find("[data-automation-id^='jobPosting']").Length() > 0:
		return PlatformWorkday
	}
	if html, err := doc.Html(); err == nil {
		lower := strings.ToLower(html)
		switch {
		case strings.Contains(lower, "greenhouse.io"):
			return PlatformGreenhouse
		case strings.Contains(lower, "lever.co"):
			return PlatformLever
		case strings.Contains(lower, "myworkdayjobs.com"):
			return PlatformWorkday
		}
	}
	return PlatformUnknown
}

// ExtractHTML returns the readable job-posting text from an HTML page.
// Navigation, forms and other page chrome are dropped; the first content
// container that yields text wins, falling back to the whole body.
func ExtractHTML(source, html string) (string, Platform, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", PlatformUnknown, &ExtractionError{Source: source, Message: "failed to parse HTML", Cause: err}
	}
	platform := DetectPlatform(doc)

	doc.Find(noiseSelectors).Remove()
	// block elements end a line; Text() would otherwise run them together
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, div, br, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	selectors := append(append([]string{}, platformSelectors[platform]...), genericSelectors...)
	var text string
	for _, sel := range selectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			if text = CleanText(trimLines(found.Text())); text != "" {
				break
			}
		}
	}
	if text == "" {
		text = CleanText(trimLines(doc.Find("body").Text()))
	}
	if text == "" {
		return "", platform, &ExtractionError{Source: source, Message: "no readable text in page"}
	}
	return text, platform, nil
}

// trimLines drops source indentation and blank runs left by markup
func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
