package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"newslens/internal/profile"
)

// Containers enumerates the candidate article nodes for a document.
// Container selectors are additive rather than first-match-wins: a
// single page layout may mix container shapes, so every selector in the
// chain contributes matches. Nodes matched by more than one selector
// appear once, in the order first encountered.
func Containers(doc *goquery.Document, chain profile.Chain) []*goquery.Selection {
	var out []*goquery.Selection
	seen := make(map[*html.Node]struct{})

	for _, s := range chain {
		switch s.Type {
		case profile.SelectorXPath:
			if len(doc.Nodes) == 0 {
				continue
			}
			nodes, err := htmlquery.QueryAll(doc.Nodes[0], s.Query)
			if err != nil {
				continue
			}
			for _, n := range nodes {
				if _, dup := seen[n]; dup {
					continue
				}
				seen[n] = struct{}{}
				out = append(out, goquery.NewDocumentFromNode(n).Selection)
			}
		default:
			doc.Find(s.Query).Each(func(_ int, c *goquery.Selection) {
				if len(c.Nodes) == 0 {
					return
				}
				if _, dup := seen[c.Nodes[0]]; dup {
					return
				}
				seen[c.Nodes[0]] = struct{}{}
				out = append(out, c)
			})
		}
	}
	return out
}
