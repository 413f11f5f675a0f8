package bedinfo

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ErrUnrecognizedMarkup is returned when a page does not contain the
// structures the parsers expect. Callers treat it like any other
// upstream failure and fall back to synthetic data.
var ErrUnrecognizedMarkup = errors.New("bedinfo: unrecognized upstream markup")

var digitsRe = regexp.MustCompile(`\d+`)

func parseDoc(page []byte) (*html.Node, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("bedinfo: parse html: %w", err)
	}
	return doc, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isElem(n *html.Node, names ...string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, name := range names {
		if n.Data == name {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if pred(node) {
			out = append(out, node)
			// Do not descend into a match; nested matches would
			// duplicate rows.
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	matches := findAll(n, pred)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func firstInt(s string) int {
	m := digitsRe.FindString(s)
	if m == "" {
		return 0
	}
	v, _ := strconv.Atoi(m)
	return v
}

// hospitalID pulls the upstream hospital code out of a listing card's
// detail link.
func hospitalID(card *html.Node) string {
	for _, a := range findAll(card, func(n *html.Node) bool { return isElem(n, "a") }) {
		href := attrVal(a, "href")
		if href == "" {
			continue
		}
		u, err := url.Parse(href)
		if err != nil {
			continue
		}
		q := u.Query()
		if id := q.Get("kode_rs"); id != "" {
			return id
		}
		if id := q.Get("hospitalid"); id != "" {
			return id
		}
	}
	return ""
}

// ParseHospitals extracts the hospital cards from a listing page. The
// covid layout carries a single bed count per card; the general layout
// carries a room table. The parser accepts only those two shapes and
// fails with ErrUnrecognizedMarkup on anything else.
func ParseHospitals(page []byte, hospitalType int) ([]Hospital, error) {
	doc, err := parseDoc(page)
	if err != nil {
		return nil, err
	}
	cards := findAll(doc, func(n *html.Node) bool {
		return (isElem(n, "div") || isElem(n, "article")) && (hasClass(n, "cardRS") || hasClass(n, "card"))
	})
	if len(cards) == 0 {
		return nil, ErrUnrecognizedMarkup
	}

	seen := map[string]bool{}
	hospitals := []Hospital{}
	for _, card := range cards {
		name := textOf(findFirst(card, func(n *html.Node) bool {
			return isElem(n, "h3", "h4") || hasClass(n, "card-title")
		}))
		if name == "" {
			return nil, ErrUnrecognizedMarkup
		}
		address := textOf(findFirst(card, func(n *html.Node) bool {
			return isElem(n, "p") && strings.Contains(textOf(n), "Jl.")
		}))
		phone := textOf(findFirst(card, func(n *html.Node) bool {
			return isElem(n, "span") && strings.Contains(strings.ToLower(textOf(n)), "hotline")
		}))

		id := hospitalID(card)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		h := Hospital{ID: id, Name: name, Address: address, Phone: phone}
		if hospitalType == TypeGeneral {
			for _, row := range findAll(card, func(n *html.Node) bool { return isElem(n, "tr") }) {
				cells := findAll(row, func(n *html.Node) bool { return isElem(n, "td") })
				if len(cells) < 3 {
					continue
				}
				h.AvailableBeds = append(h.AvailableBeds, BedRoom{
					BedClass:  textOf(cells[0]),
					RoomName:  textOf(cells[1]),
					Available: firstInt(textOf(cells[2])),
					Info:      "Tersedia",
				})
			}
			if len(h.AvailableBeds) == 0 {
				return nil, ErrUnrecognizedMarkup
			}
		} else {
			countNode := findFirst(card, func(n *html.Node) bool {
				return isElem(n, "b") && strings.Contains(strings.ToLower(textOf(n)), "bed")
			})
			if countNode == nil {
				return nil, ErrUnrecognizedMarkup
			}
			beds := firstInt(textOf(countNode))
			queue := 0
			h.Queue = &queue
			h.BedAvailability = &beds
			h.Info = "Tersedia"
		}
		hospitals = append(hospitals, h)
	}
	if len(hospitals) == 0 {
		return nil, ErrUnrecognizedMarkup
	}
	return hospitals, nil
}

// ParseBedDetail extracts the per-room counters from a hospital detail
// page.
func ParseBedDetail(page []byte, hospitalID string) (*BedDetail, error) {
	doc, err := parseDoc(page)
	if err != nil {
		return nil, err
	}

	detail := &BedDetail{ID: hospitalID}

	if header := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "div") && hasClass(n, "col-11")
	}); header != nil {
		smalls := findAll(header, func(n *html.Node) bool { return isElem(n, "small") })
		if len(smalls) > 0 {
			detail.Address = textOf(smalls[0])
		}
		if len(smalls) > 1 {
			detail.Phone = textOf(smalls[1])
		}
		full := textOf(header)
		full = strings.Replace(full, detail.Address, "", 1)
		full = strings.Replace(full, detail.Phone, "", 1)
		detail.Name = strings.TrimSpace(full)
	}

	items := findAll(doc, func(n *html.Node) bool {
		return isElem(n, "div") && hasClass(n, "col-md-12") && hasClass(n, "mb-2")
	})
	if len(items) == 0 {
		return nil, ErrUnrecognizedMarkup
	}

	for _, item := range items {
		title := findFirst(item, func(n *html.Node) bool {
			return isElem(n, "p") && hasClass(n, "mb-0")
		})
		if title == nil {
			return nil, ErrUnrecognizedMarkup
		}
		updated := textOf(findFirst(title, func(n *html.Node) bool { return isElem(n, "small") }))
		roomName := strings.TrimSpace(strings.Replace(textOf(title), updated, "", 1))
		updated = strings.TrimSpace(strings.TrimPrefix(updated, "Update"))

		stats := findAll(item, func(n *html.Node) bool {
			return isElem(n, "div") && hasClass(n, "text-center") && hasClass(n, "pt-1") && hasClass(n, "pb-1")
		})
		if len(stats) < 3 {
			return nil, ErrUnrecognizedMarkup
		}
		detail.BedDetail = append(detail.BedDetail, BedDetailItem{
			Time: updated,
			Stats: BedStats{
				Title:        strings.TrimSuffix(roomName, "Update"),
				BedAvailable: firstInt(textOf(stats[0])),
				BedEmpty:     firstInt(textOf(stats[1])),
				Queue:        firstInt(textOf(stats[2])),
			},
		})
	}
	return detail, nil
}
