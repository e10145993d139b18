package integration

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dpavlovic/climate-watch/internal/entities"
)

// NewsScraper extracts climate news articles from an HTML listing page
type NewsScraper struct {
	sourceURL string
}

// NewNewsScraper creates a new news article scraper
func NewNewsScraper(url string) *NewsScraper {
	if url == "" {
		// Default placeholder page until a real news source is wired in
		url = "https://example.com/climate-news"
	}
	return &NewsScraper{sourceURL: url}
}

// FetchNewsArticles retrieves the news page and extracts one entry per
// <article> element: the first <h2> text as the title and the first anchor
// href as the link. A structurally broken article aborts the whole scan and
// the caller gets an empty list. A page with zero <article> elements is a
// normal empty result.
func (ns *NewsScraper) FetchNewsArticles() ([]entities.NewsArticle, error) {
	log.Printf("Sending HTTP request to news page %s", ns.sourceURL)
	res, err := http.Get(ns.sourceURL)
	if err != nil {
		log.Printf("Error fetching news articles: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch news page: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	// Check for successful response
	if res.StatusCode != 200 {
		log.Printf("Received unexpected status code: %d %s", res.StatusCode, res.Status)
		return nil, fmt.Errorf("%w: unexpected status code: %d %s", ErrNetwork, res.StatusCode, res.Status)
	}

	// Parse the HTML document
	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		log.Printf("Error parsing news HTML: %v", err)
		return nil, fmt.Errorf("%w: failed to parse news page: %v", ErrParse, err)
	}

	articles := []entities.NewsArticle{}
	var parseErr error

	doc.Find("article").EachWithBreak(func(index int, item *goquery.Selection) bool {
		heading := item.Find("h2").First()
		if heading.Length() == 0 {
			parseErr = fmt.Errorf("%w: article %d has no <h2> heading", ErrParse, index)
			return false
		}

		link, ok := item.Find("a").First().Attr("href")
		if !ok {
			parseErr = fmt.Errorf("%w: article %d has no anchor href", ErrParse, index)
			return false
		}

		articles = append(articles, entities.NewsArticle{
			Title: strings.TrimSpace(heading.Text()),
			Link:  link,
		})
		return true
	})

	if parseErr != nil {
		// One malformed article discards the whole scan; collection has
		// always been all-or-nothing per page.
		log.Printf("Error parsing HTML content: %v", parseErr)
		return nil, parseErr
	}

	log.Printf("Extracted %d news articles from %s", len(articles), ns.sourceURL)
	return articles, nil
}
