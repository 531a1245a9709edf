package provider

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/gleaner/model"
)

// scanDPI is the resolution assumed when estimating point sizes from hOCR
// pixel geometry. Tesseract does not report font sizes per word, so the word
// box height at this DPI stands in for one.
const scanDPI = 300.0

// ParseHOCR converts hOCR markup into a DocumentLayout. Pages come from
// ocr_page elements, words from ocrx_word elements; coordinates are
// normalized against each page's pixel bounds and empty words are dropped.
func ParseHOCR(r io.Reader, filename string) (*model.DocumentLayout, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	layout := &model.DocumentLayout{Filename: filename}
	walkPages(doc, layout)
	if layout.PageCount == 0 {
		return nil, fmt.Errorf("hOCR contains no ocr_page elements")
	}

	layout.Fingerprint = model.ComputeFingerprint(layout.Blocks)
	return layout, nil
}

func walkPages(n *html.Node, layout *model.DocumentLayout) {
	if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
		page := layout.PageCount
		layout.PageCount++

		props := parseTitle(attr(n, "title"))
		x0, y0, x1, y1, ok := bboxOf(props)
		width, height := x1-x0, y1-y0
		if !ok || width <= 0 || height <= 0 {
			width, height = 1, 1
		}
		layout.PageSizes = append(layout.PageSizes, model.PageSize{Width: width, Height: height})

		walkWords(n, layout, page, width, height)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkPages(c, layout)
	}
}

func walkWords(n *html.Node, layout *model.DocumentLayout, page int, pageW, pageH float64) {
	if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
		text := strings.TrimSpace(textOf(n))
		if text == "" {
			return
		}

		props := parseTitle(attr(n, "title"))
		x0, y0, x1, y1, ok := bboxOf(props)
		if !ok {
			return
		}

		bbox := model.NewBoundingBox(x0/pageW, y0/pageH, x1/pageW, y1/pageH, page)
		confidence := 0.0
		if c, ok := props["x_wconf"]; ok {
			confidence, _ = strconv.ParseFloat(c, 64)
		}
		fontSize := (y1 - y0) * 72.0 / scanDPI

		layout.Blocks = append(layout.Blocks, model.TextBlock{
			ID:         fmt.Sprintf("page%d_block%d", page, len(layout.Blocks)),
			Text:       text,
			BBox:       bbox,
			Confidence: confidence,
			FontSize:   fontSize,
			BlockType:  model.InferBlockType(text, bbox, fontSize),
		})
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkWords(c, layout, page, pageW, pageH)
	}
}

// parseTitle splits an hOCR title attribute into its properties:
// "bbox 12 40 260 90; x_wconf 96" yields {"bbox": "12 40 260 90",
// "x_wconf": "96"}.
func parseTitle(title string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		props[fields[0]] = strings.Join(fields[1:], " ")
	}
	return props
}

func bboxOf(props map[string]string) (x0, y0, x1, y1 float64, ok bool) {
	fields := strings.Fields(props["bbox"])
	if len(fields) != 4 {
		return 0, 0, 0, 0, false
	}
	coords := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		coords[i] = v
	}
	return coords[0], coords[1], coords[2], coords[3], true
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// textOf concatenates the text content below a node.
func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textOf(c))
	}
	return sb.String()
}
