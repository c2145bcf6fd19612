// Package feed turns raw syndication XML into normalized episode records.
// Parsing is defensive: a bad item is logged and skipped, never fatal to the
// rest of the feed, and a document that isn't well-formed XML yields an
// empty list rather than an error.
package feed

import (
	"html"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/killallgit/player-core/internal/models"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	secondsPattern = regexp.MustCompile(`^\d+$`)
	hhmmssPattern  = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})$`)
	mmssPattern    = regexp.MustCompile(`^(\d+):(\d{1,2})$`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

// Parse converts feed XML into episodes ordered most-recent-first.
// Episodes with unparsable publication dates sort last.
func Parse(xmlText string) []models.Episode {
	parser := gofeed.NewParser()
	parsed, err := parser.ParseString(xmlText)
	if err != nil {
		log.Printf("[WARN] Feed document failed to parse, returning no episodes: %v", err)
		return []models.Episode{}
	}

	episodes := make([]models.Episode, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		episode, ok := parseItem(item)
		if !ok {
			continue
		}
		episodes = append(episodes, episode)
	}

	sort.SliceStable(episodes, func(i, j int) bool {
		ti, tj := episodes[i].PublishedAt, episodes[j].PublishedAt
		if ti.IsZero() {
			return false
		}
		if tj.IsZero() {
			return true
		}
		return ti.After(tj)
	})

	return episodes
}

// parseItem normalizes a single feed item. Items without a title or an audio
// enclosure are dropped. Any panic from unexpected item shapes is contained
// here so one bad item can't take down the whole feed.
func parseItem(item *gofeed.Item) (episode models.Episode, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] Skipping unparsable feed item: %v", r)
			ok = false
		}
	}()

	if item == nil {
		return models.Episode{}, false
	}

	audioURL, mimeType := audioEnclosure(item)
	if audioURL == "" {
		return models.Episode{}, false
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		return models.Episode{}, false
	}

	description := item.Description
	if description == "" && item.ITunesExt != nil {
		description = item.ITunesExt.Summary
	}

	guid := item.GUID
	if guid == "" {
		guid = audioURL
	}

	episode = models.Episode{
		Title:           title,
		Description:     stripMarkup(description),
		AudioURL:        audioURL,
		PubDate:         item.Published,
		DurationSeconds: itemDuration(item),
		ArtworkURL:      imageURL(item),
		GUID:            guid,
		MimeType:        mimeType,
	}
	if item.PublishedParsed != nil {
		episode.PublishedAt = *item.PublishedParsed
	}
	return episode, true
}

// audioEnclosure returns the item's playable enclosure, skipping image
// enclosures which only ever carry artwork.
func audioEnclosure(item *gofeed.Item) (url, mimeType string) {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "image") {
			continue
		}
		mimeType = enc.Type
		if mimeType == "" {
			mimeType = models.DefaultMimeType
		}
		return enc.URL, mimeType
	}
	return "", ""
}

// imageURL resolves item artwork: the itunes image link wins, then a
// media:content element with medium="image", then an image-typed enclosure.
func imageURL(item *gofeed.Item) string {
	if item.ITunesExt != nil && item.ITunesExt.Image != "" {
		return item.ITunesExt.Image
	}

	if media, found := item.Extensions["media"]; found {
		for _, content := range media["content"] {
			if content.Attrs["medium"] == "image" && content.Attrs["url"] != "" {
				return content.Attrs["url"]
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image") && enc.URL != "" {
			return enc.URL
		}
	}

	return ""
}

// itemDuration reads the itunes duration tag when present.
func itemDuration(item *gofeed.Item) int {
	if item.ITunesExt == nil {
		return 0
	}
	return ParseDuration(item.ITunesExt.Duration)
}

// ParseDuration normalizes the duration formats seen in the wild:
// a bare integer is already seconds, H:MM:SS and MM:SS are clock forms.
// Anything else (including empty input) is 0.
func ParseDuration(raw string) int {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0
	}

	if secondsPattern.MatchString(value) {
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return seconds
	}

	if m := hhmmssPattern.FindStringSubmatch(value); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		seconds, _ := strconv.Atoi(m[3])
		return hours*3600 + minutes*60 + seconds
	}

	if m := mmssPattern.FindStringSubmatch(value); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		return minutes*60 + seconds
	}

	return 0
}

// stripMarkup removes HTML tags and collapses whitespace in descriptions.
func stripMarkup(text string) string {
	stripped := tagPattern.ReplaceAllString(text, " ")
	stripped = html.UnescapeString(stripped)
	return strings.TrimSpace(spacePattern.ReplaceAllString(stripped, " "))
}
