package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/kerbaras/animes/pkg/data"
	"github.com/kerbaras/animes/pkg/utils"
)

// AnimevostName is the registry name of the animevost.org provider.
const AnimevostName = "animevost"

const minSearchQueryLen = 4

var (
	releaseIDPattern = regexp.MustCompile(`/(\d+)-`)
	episodeNumber    = regexp.MustCompile(`\d+`)
)

// playlistItem is one element of the animevost playlist API response.
// Names look like "3 серия"; hd and std are direct media links.
type playlistItem struct {
	Name string `json:"name"`
	HD   string `json:"hd"`
	Std  string `json:"std"`
}

// Animevost talks to animevost.org: search and the recent-releases block are
// scraped from the site pages, episode playlists come from the JSON API.
type Animevost struct {
	site *utils.API
	api  *utils.API
}

func NewAnimevost() *Animevost {
	return &Animevost{
		site: utils.NewAPI("https://animevost.org"),
		api:  utils.NewAPI("https://api.animevost.org/v1"),
	}
}

// NewAnimevostWithURLs constructs an adapter against alternate endpoints.
func NewAnimevostWithURLs(siteURL, apiURL string) *Animevost {
	return &Animevost{
		site: utils.NewAPI(siteURL),
		api:  utils.NewAPI(apiURL),
	}
}

// Search queries the site search form. The site rejects queries shorter than
// four characters, so those fail before any request is made.
func (a *Animevost) Search(ctx context.Context, query string) ([]data.Entry, error) {
	if len([]rune(query)) < minSearchQueryLen {
		return nil, fmt.Errorf("search query must be at least %d characters", minSearchQueryLen)
	}
	form := url.Values{
		"do":           {"search"},
		"subaction":    {"search"},
		"search_start": {"0"},
		"full_search":  {"0"},
		"result_from":  {"1"},
		"story":        {query},
	}
	page, err := a.site.PostFormPage(ctx, "/", form)
	if err != nil {
		return nil, fmt.Errorf("animevost search: %w", err)
	}
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err != nil {
		return nil, fmt.Errorf("animevost search: parse page: %w", err)
	}

	var entries []data.Entry
	for _, block := range findAllByClass(doc, "shortstory") {
		link, title, ok := firstLink(block)
		if !ok {
			continue
		}
		entries = append(entries, a.newEntry(link, title))
	}
	return entries, nil
}

// Recent lists the releases from the site schedule block.
func (a *Animevost) Recent(ctx context.Context) ([]data.Entry, error) {
	page, err := a.site.GetPage(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("animevost recent: %w", err)
	}
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err != nil {
		return nil, fmt.Errorf("animevost recent: parse page: %w", err)
	}

	blocks := findAllByClass(doc, "raspis")
	if len(blocks) == 0 {
		return nil, fmt.Errorf("animevost recent: schedule block not found")
	}
	var entries []data.Entry
	for _, link := range allLinks(blocks[0]) {
		entries = append(entries, a.newEntry(link.href, link.text))
	}
	return entries, nil
}

// Episodes fetches the playlist for a release and returns the episode
// numbers in ascending order.
func (a *Animevost) Episodes(ctx context.Context, playlistID string) ([]int, error) {
	items, err := a.playlist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	numbers := make([]int, 0, len(items))
	for n := range items {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, nil
}

// EpisodeURL resolves the direct media link for one episode, preferring the
// HD variant.
func (a *Animevost) EpisodeURL(ctx context.Context, playlistID string, episode int) (string, error) {
	items, err := a.playlist(ctx, playlistID)
	if err != nil {
		return "", err
	}
	link, ok := items[episode]
	if !ok {
		return "", fmt.Errorf("animevost: episode %d not in playlist %s", episode, playlistID)
	}
	return link, nil
}

func (a *Animevost) playlist(ctx context.Context, playlistID string) (map[int]string, error) {
	var items []playlistItem
	form := url.Values{"id": {playlistID}}
	if err := a.api.PostForm(ctx, "/playlist", form, &items); err != nil {
		return nil, fmt.Errorf("animevost playlist %s: %w", playlistID, err)
	}
	links := make(map[int]string, len(items))
	for _, item := range items {
		num := episodeNumber.FindString(item.Name)
		if num == "" {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		if item.HD != "" {
			links[n] = item.HD
		} else {
			links[n] = item.Std
		}
	}
	return links, nil
}

func (a *Animevost) newEntry(link, title string) data.Entry {
	return data.Entry{
		Title:      strings.TrimSpace(title),
		SourceURL:  link,
		Provider:   AnimevostName,
		PlaylistID: releaseID(link),
	}
}

// releaseID extracts the numeric release id from a release URL, e.g.
// "2147-naruto.html" -> "2147". Empty when the URL has no id.
func releaseID(link string) string {
	m := releaseIDPattern.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}

type pageLink struct {
	href string
	text string
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findAllByClass(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	if hasClass(n, class) {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAllByClass(c, class)...)
	}
	return out
}

func allLinks(n *html.Node) []pageLink {
	var out []pageLink
	if n.Type == html.ElementNode && n.Data == "a" {
		var href string
		for _, attr := range n.Attr {
			if attr.Key == "href" {
				href = attr.Val
			}
		}
		if href != "" {
			out = append(out, pageLink{href: href, text: nodeText(n)})
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, allLinks(c)...)
	}
	return out
}

func firstLink(n *html.Node) (href, text string, ok bool) {
	links := allLinks(n)
	if len(links) == 0 {
		return "", "", false
	}
	return links[0].href, links[0].text, true
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
