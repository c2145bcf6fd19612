package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedHeader = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd" xmlns:media="http://search.yahoo.com/mrss/">
<channel><title>Test Show</title>`

const feedFooter = `</channel></rss>`

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"bare seconds", "90", 90},
		{"hours minutes seconds", "1:02:03", 3723},
		{"minutes seconds", "2:05", 125},
		{"minutes seconds with padding", " 45:00 ", 2700},
		{"empty", "", 0},
		{"garbage", "about an hour", 0},
		{"negative", "-30", 0},
		{"too many parts", "1:2:3:4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.input))
		})
	}
}

func TestParseDropsItemsWithoutEnclosureOrTitle(t *testing.T) {
	xml := feedHeader + `
<item>
  <title>Has audio</title>
  <enclosure url="https://example.com/a.mp3" type="audio/mpeg"/>
</item>
<item>
  <title>No enclosure at all</title>
</item>
<item>
  <enclosure url="https://example.com/untitled.mp3" type="audio/mpeg"/>
</item>
<item>
  <title>Only artwork enclosure</title>
  <enclosure url="https://example.com/cover.jpg" type="image/jpeg"/>
</item>` + feedFooter

	episodes := Parse(xml)
	require.Len(t, episodes, 1)
	assert.Equal(t, "Has audio", episodes[0].Title)
	assert.Equal(t, "https://example.com/a.mp3", episodes[0].AudioURL)
	assert.Equal(t, "audio/mpeg", episodes[0].MimeType)
}

func TestParseMalformedDocumentReturnsEmpty(t *testing.T) {
	episodes := Parse("this is not xml")
	require.NotNil(t, episodes)
	assert.Empty(t, episodes)
}

func TestParseOrdersNewestFirstWithUnparsableDatesLast(t *testing.T) {
	xml := feedHeader + `
<item>
  <title>Middle</title>
  <pubDate>Mon, 02 Jan 2023 10:00:00 GMT</pubDate>
  <enclosure url="https://example.com/middle.mp3" type="audio/mpeg"/>
</item>
<item>
  <title>Undated</title>
  <pubDate>sometime last spring</pubDate>
  <enclosure url="https://example.com/undated.mp3" type="audio/mpeg"/>
</item>
<item>
  <title>Newest</title>
  <pubDate>Tue, 03 Jan 2023 10:00:00 GMT</pubDate>
  <enclosure url="https://example.com/newest.mp3" type="audio/mpeg"/>
</item>
<item>
  <title>Oldest</title>
  <pubDate>Sun, 01 Jan 2023 10:00:00 GMT</pubDate>
  <enclosure url="https://example.com/oldest.mp3" type="audio/mpeg"/>
</item>` + feedFooter

	episodes := Parse(xml)
	require.Len(t, episodes, 4)
	assert.Equal(t, "Newest", episodes[0].Title)
	assert.Equal(t, "Middle", episodes[1].Title)
	assert.Equal(t, "Oldest", episodes[2].Title)
	assert.Equal(t, "Undated", episodes[3].Title)
}

func TestParseArtworkPriority(t *testing.T) {
	tests := []struct {
		name string
		item string
		want string
	}{
		{
			name: "itunes image wins over media content",
			item: `<item>
  <title>Ep</title>
  <itunes:image href="https://example.com/itunes.jpg"/>
  <media:content url="https://example.com/media.jpg" medium="image"/>
  <enclosure url="https://example.com/a.mp3" type="audio/mpeg"/>
</item>`,
			want: "https://example.com/itunes.jpg",
		},
		{
			name: "media content image beats image enclosure",
			item: `<item>
  <title>Ep</title>
  <media:content url="https://example.com/media.jpg" medium="image"/>
  <enclosure url="https://example.com/a.mp3" type="audio/mpeg"/>
  <enclosure url="https://example.com/cover.png" type="image/png"/>
</item>`,
			want: "https://example.com/media.jpg",
		},
		{
			name: "image enclosure as last resort",
			item: `<item>
  <title>Ep</title>
  <enclosure url="https://example.com/a.mp3" type="audio/mpeg"/>
  <enclosure url="https://example.com/cover.png" type="image/png"/>
</item>`,
			want: "https://example.com/cover.png",
		},
		{
			name: "no artwork",
			item: `<item>
  <title>Ep</title>
  <enclosure url="https://example.com/a.mp3" type="audio/mpeg"/>
</item>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			episodes := Parse(feedHeader + tt.item + feedFooter)
			require.Len(t, episodes, 1)
			assert.Equal(t, tt.want, episodes[0].ArtworkURL)
		})
	}
}

func TestParseEpisodeFields(t *testing.T) {
	xml := feedHeader + `
<item>
  <title>  Deep Dive  </title>
  <description>&lt;p&gt;Part &amp;amp; parcel of   testing&lt;/p&gt;</description>
  <guid>ep-42</guid>
  <pubDate>Mon, 02 Jan 2023 10:00:00 GMT</pubDate>
  <itunes:duration>1:00:00</itunes:duration>
  <enclosure url="https://example.com/deep.mp3" type=""/>
</item>` + feedFooter

	episodes := Parse(xml)
	require.Len(t, episodes, 1)

	ep := episodes[0]
	assert.Equal(t, "Deep Dive", ep.Title)
	assert.Equal(t, "Part & parcel of testing", ep.Description)
	assert.Equal(t, "ep-42", ep.GUID)
	assert.Equal(t, 3600, ep.DurationSeconds)
	assert.Equal(t, "audio/mpeg", ep.MimeType, "missing enclosure type defaults to mpeg")
	assert.False(t, ep.PublishedAt.IsZero())
}

func TestParseGUIDFallsBackToAudioURL(t *testing.T) {
	xml := feedHeader + `
<item>
  <title>Ep</title>
  <enclosure url="https://example.com/a.mp3" type="audio/mpeg"/>
</item>` + feedFooter

	episodes := Parse(xml)
	require.Len(t, episodes, 1)
	assert.Equal(t, "https://example.com/a.mp3", episodes[0].GUID)
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "plain text", stripMarkup("plain text"))
	assert.Equal(t, "one two", stripMarkup("<p>one</p>\n\n<b>two</b>"))
	assert.Equal(t, "a < b", stripMarkup("a &lt; b"))
	assert.Equal(t, "", stripMarkup("  \n "))
}
