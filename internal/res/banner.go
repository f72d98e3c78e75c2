package res

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	xhtml "golang.org/x/net/html"
)

// FetchBanner resolves urlStr to banner image bytes. A URL that serves an
// image directly is used as is. A URL that serves an HTML page is parsed
// and its preview image located: the og:image meta tag wins, then
// twitter:image, then the first <img> on the page. Relative image
// references resolve against the page URL.
func (l *Loader) FetchBanner(urlStr string) ([]byte, error) {
	res, err := l.Load(urlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch banner source: %w", err)
	}

	if res.Type == ResourceTypeImage {
		return res.Data, nil
	}
	if res.Type != ResourceTypeHTML && !looksLikeHTML(res.Data) {
		return nil, fmt.Errorf("banner source is neither an image nor a page: %s", urlStr)
	}

	imgURL, ok := findPageImage(res.Data)
	if !ok {
		return nil, fmt.Errorf("no banner image found at %s", urlStr)
	}

	resolved, err := resolveRef(res.URL, imgURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve banner image URL %q: %w", imgURL, err)
	}

	imgRes, err := l.LoadImage(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch banner image: %w", err)
	}
	return imgRes.Data, nil
}

// findPageImage walks a parsed page for its representative image URL.
// Preference order: og:image, twitter:image, first <img> src.
func findPageImage(page []byte) (string, bool) {
	doc, err := xhtml.Parse(bytes.NewReader(page))
	if err != nil {
		return "", false
	}

	var ogImage, twitterImage, firstImg string

	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode {
			switch strings.ToLower(n.Data) {
			case "meta":
				var key, content string
				for _, a := range n.Attr {
					switch strings.ToLower(a.Key) {
					case "property", "name":
						key = strings.ToLower(strings.TrimSpace(a.Val))
					case "content":
						content = strings.TrimSpace(a.Val)
					}
				}
				if content != "" {
					switch key {
					case "og:image":
						if ogImage == "" {
							ogImage = content
						}
					case "twitter:image", "twitter:image:src":
						if twitterImage == "" {
							twitterImage = content
						}
					}
				}
			case "img":
				if firstImg == "" {
					for _, a := range n.Attr {
						if strings.EqualFold(a.Key, "src") && strings.TrimSpace(a.Val) != "" {
							firstImg = strings.TrimSpace(a.Val)
							break
						}
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	switch {
	case ogImage != "":
		return ogImage, true
	case twitterImage != "":
		return twitterImage, true
	case firstImg != "":
		return firstImg, true
	}
	return "", false
}

// resolveRef resolves ref against the page URL it was found on.
func resolveRef(pageURL, ref string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}

func looksLikeHTML(data []byte) bool {
	head := bytes.TrimSpace(data)
	if len(head) > 512 {
		head = head[:512]
	}
	lower := bytes.ToLower(head)
	return bytes.Contains(lower, []byte("<html")) || bytes.Contains(lower, []byte("<!doctype html"))
}
