package loader

import "encoding/xml"

// node is a generic XML element: the loader does not know the document's
// shape ahead of time (that is exactly what it validates), so it decodes
// into this recursive, name-agnostic tree and inspects it by hand, the way
// spec.md §4.3 describes the validator's contract: "input is a parsed XML
// tree".
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
	Content string     `xml:",chardata"`
}

func (n node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

func (n node) attrNames() []string {
	names := make([]string, len(n.Attrs))
	for i, a := range n.Attrs {
		names[i] = a.Name.Local
	}

	return names
}
