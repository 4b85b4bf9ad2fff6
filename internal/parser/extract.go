package parser

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"resume-builder/internal/model"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNoText means a document yielded no usable text.
	ErrNoText = errors.New("no text could be extracted")
	// ErrUnreadable means a document claims a format but cannot be decoded.
	ErrUnreadable = errors.New("document is corrupt or truncated")
)

// pdfText returns the text of every page of a PDF document, one line per
// text row, top to bottom.
func pdfText(data []byte) (text string, err error) {
	// the pdf package panics on some malformed object streams
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrUnreadable, p)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			slog.Warn("parser: failed to extract text from pdf page", "page", i, "error", err)
			continue
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(word.S)
			}
			sb.WriteByte('\n')
		}
	}

	text = strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	urlRe   = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?(linkedin\.com|github\.com|gitlab\.com)/[^\s,;|]+`)
	splitRe = regexp.MustCompile(`\s*[,;•|·]\s*`)
)

var headings = map[string]string{
	"summary":          "summary",
	"profile":          "summary",
	"about":            "summary",
	"about me":         "summary",
	"experience":       "experience",
	"work experience":  "experience",
	"employment":       "experience",
	"education":        "education",
	"skills":           "skills",
	"technical skills": "skills",
	"projects":         "projects",
	"languages":        "languages",
	"interests":        "interests",
	"certificates":     "certificates",
	"certifications":   "certificates",
}

// heading reports whether line is a section heading, returning its key and
// any text following a colon on the same line.
func heading(line string) (key, rest string, ok bool) {
	head, tail, hasColon := strings.Cut(line, ":")
	key, ok = headings[strings.ToLower(strings.TrimSpace(head))]
	if !ok {
		return "", "", false
	}
	if hasColon {
		rest = strings.TrimSpace(tail)
	}
	return key, rest, true
}

// ExtractFields builds a best-effort resume from plain text: identity from
// the first lines, contact details by pattern, and the summary, skills,
// languages and interests sections by heading.
func ExtractFields(text string) model.Resume {
	r := model.Empty()
	p := r.Personal

	if m := emailRe.FindString(text); m != "" {
		p.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		p.Phone = strings.TrimSpace(m)
	}
	for _, m := range urlRe.FindAllStringSubmatch(text, -1) {
		platform := "LinkedIn"
		switch strings.ToLower(m[1]) {
		case "github.com":
			platform = "GitHub"
		case "gitlab.com":
			platform = "GitLab"
		}
		u := m[0]
		if !strings.HasPrefix(strings.ToLower(u), "http") {
			u = "https://" + u
		}
		r.Social = append(r.Social, model.SocialLink{Platform: platform, URL: u})
	}

	sections := map[string][]string{}
	current := ""
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if key, rest, ok := heading(line); ok {
			current = key
			if rest != "" {
				sections[current] = append(sections[current], rest)
			}
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
			continue
		}
		// identity lines come before the first heading
		if emailRe.MatchString(line) || phoneRe.MatchString(line) || urlRe.MatchString(line) || len(line) > 60 {
			continue
		}
		switch {
		case p.FullName == "":
			p.FullName = line
		case p.Position == "":
			p.Position = line
		}
	}

	r.Summary = strings.Join(sections["summary"], " ")
	r.Skills = splitList(sections["skills"])
	r.Interests = splitList(sections["interests"])
	for _, l := range splitList(sections["languages"]) {
		name, level, _ := strings.Cut(l, " - ")
		r.Languages = append(r.Languages, model.Language{Name: strings.TrimSpace(name), Proficiency: strings.TrimSpace(level)})
	}
	for _, c := range sections["certificates"] {
		r.Certificates = append(r.Certificates, model.Certificate{Name: strings.TrimLeft(c, "-•* ")})
	}

	r.Normalize()
	return r
}

func splitList(lines []string) []string {
	var out []string
	for _, l := range lines {
		for _, item := range splitRe.Split(strings.TrimLeft(l, "-•* "), -1) {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
