package urlgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const resultTemplate = "https://results.example.com/%s/?page=%d&event=MAR&search[sex]=%s&num_results=%d"

func TestPrepareResultURLs(t *testing.T) {
	urls, err := PrepareResultURLs(resultTemplate, "2019", []int{3, 2}, 25)
	require.NoError(t, err)

	require.Len(t, urls.Men, 3)
	require.Len(t, urls.Women, 2)
	require.Equal(t,
		"https://results.example.com/2019/?page=1&event=MAR&search[sex]=M&num_results=25",
		urls.Men[0])
	require.Equal(t,
		"https://results.example.com/2019/?page=2&event=MAR&search[sex]=W&num_results=25",
		urls.Women[1])

	flat := urls.Flat()
	require.Len(t, flat, 5)
	// Every men page comes before every women page.
	require.Equal(t, urls.Men[2], flat[2])
	require.Equal(t, urls.Women[0], flat[3])
}

func TestPrepareResultURLsZeroPages(t *testing.T) {
	urls, err := PrepareResultURLs(resultTemplate, "2019", []int{0, 0}, 25)
	require.NoError(t, err)
	require.Empty(t, urls.Flat())
}

func TestPrepareResultURLsBadPageCount(t *testing.T) {
	for _, pages := range [][]int{nil, {5}, {5, 4, 3}} {
		_, err := PrepareResultURLs(resultTemplate, "2019", pages, 25)
		require.ErrorIs(t, err, ErrPageCount)
	}
}

func TestPrepareSplitURLs(t *testing.T) {
	urls := PrepareSplitURLs("https://results.example.com/%s/?content=detail&idp=%s", "2019", []string{"ABC123", "DEF456"})
	require.Equal(t, []string{
		"https://results.example.com/2019/?content=detail&idp=ABC123",
		"https://results.example.com/2019/?content=detail&idp=DEF456",
	}, urls)
}
