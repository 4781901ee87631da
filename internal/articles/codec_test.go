package articles

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romangod6/kvblog/internal/models"
)

func TestCodecRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 9, 18, 4, 5, 678000000, time.UTC)

	cases := []*models.Article{
		{ID: "000001", Title: "Hello World", Content: "first post", Img: "", CreateDate: created},
		{ID: "000002", Title: "图片", Content: "line one\nline \"two\"", Img: "https://example.com/a.png", CreateDate: created},
		{ID: "000003", Title: "<b>html</b>", Content: "a & b", Img: "", CreateDate: time.Date(2020, 1, 1, 0, 0, 0, 1, time.UTC)},
	}

	for _, want := range cases {
		raw, err := Encode(want)
		require.NoError(t, err)

		got, err := Decode(want.ID, raw)
		require.NoError(t, err)

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestEncodeFields(t *testing.T) {
	a := models.NewArticle("T", "C", "", time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.FixedZone("CET", 3600)))
	a.ID = "000009"

	raw, err := Encode(a)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))

	assert.Equal(t, map[string]interface{}{
		"title":      "T",
		"content":    "C",
		"img":        "",
		"createDate": "2024-01-02T02:04:05.006Z",
	}, fields)
}

func TestEncodeDateLayout(t *testing.T) {
	cases := map[string]struct {
		at   time.Time
		want string
	}{
		"whole second": {time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), "2024-06-01T09:00:00.000Z"},
		"milliseconds": {time.Date(2024, 6, 1, 9, 0, 0, 120000000, time.UTC), "2024-06-01T09:00:00.120Z"},
		"nanoseconds":  {time.Date(2024, 6, 1, 9, 0, 0, 123456789, time.UTC), "2024-06-01T09:00:00.123456789Z"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			a := &models.Article{Title: "t", Content: "c", CreateDate: c.at}
			raw, err := Encode(a)
			require.NoError(t, err)

			var fields map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(raw), &fields))
			assert.Equal(t, c.want, fields["createDate"])

			got, err := Decode("000001", raw)
			require.NoError(t, err)
			assert.True(t, got.CreateDate.Equal(c.at))
		})
	}
}

func TestDecodeNullImg(t *testing.T) {
	// Older records carry a millisecond timestamp and img: null.
	raw := `{"title":"Hi","content":"there","img":null,"createDate":"2023-11-05T08:15:30.123Z"}`

	a, err := Decode("000004", raw)
	require.NoError(t, err)
	assert.Equal(t, "000004", a.ID)
	assert.Equal(t, "", a.Img)
	assert.True(t, a.CreateDate.Equal(time.Date(2023, 11, 5, 8, 15, 30, 123000000, time.UTC)))
}

func TestDecodeCorrupt(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"title":`,
		"wrong type":      `{"title":1,"content":"c","createDate":"2023-11-05T08:15:30Z"}`,
		"missing title":   `{"content":"c","createDate":"2023-11-05T08:15:30Z"}`,
		"null content":    `{"title":"t","content":null,"createDate":"2023-11-05T08:15:30Z"}`,
		"missing date":    `{"title":"t","content":"c"}`,
		"unparsable date": `{"title":"t","content":"c","createDate":"yesterday"}`,
		"empty":           ``,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode("000001", raw)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}
