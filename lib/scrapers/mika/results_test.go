package mika

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"marathondata/lib/telemetry"
)

const tableListingPage = `
<html><body>
<table class="list-table">
<tr>
  <th>Place</th><th>Place gender</th><th>Place cat.</th><th>Name</th>
  <th>Club</th><th>Runner No.</th><th>Cat.</th><th>Half</th><th>Finish</th>
</tr>
<tr>
  <td>1</td><td>1</td><td>1</td>
  <td><a href="?content=detail&idp=9999990F5ECC85&lang=EN">Keller, Anna</a></td>
  <td>LRC</td><td>17</td><td>18-39</td><td>01:10:12</td><td>02:21:41</td>
</tr>
<tr>
  <td>2</td><td>2</td><td>1</td>
  <td><a href="?content=detail&idp=9999990F5ED1A2&lang=EN">Okafor, Grace</a></td>
  <td></td><td>25</td><td>40-44</td><td>01:12:55</td><td>02:25:09</td>
</tr>
<tr>
  <td colspan="9">advertisement</td>
</tr>
</table>
</body></html>`

const listListingPage = `
<html><body>
<ul class="list-group">
<li class="list-group-item row">
  <h4 class="type-fullname"><a href="?content=detail&idp=AAA111BBB&lang=EN">Diaz, Maria</a></h4>
  <div class="list-field type-field">1042</div>
  <div class="list-field type-age_class">45-49</div>
  <div class="split list-field type-time hidden-xs">01:45:00</div>
  <div class="split list-field type-time">03:30:21</div>
</li>
<li class="list-group-item row">
  <h4 class="type-fullname"><a href="?content=detail&idp=CCC222DDD&lang=EN">Svensson, Eva</a></h4>
  <div class="list-field type-field">2077</div>
  <div class="list-field type-age_class">18-39</div>
  <div class="split list-field type-time hidden-xs">–</div>
  <div class="split list-field type-time">–</div>
</li>
</ul>
</body></html>`

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestGenderFromURL(t *testing.T) {
	require.Equal(t, "M", GenderFromURL("https://x.example.com/2019/?page=1&search[sex]=M&num_results=25"))
	require.Equal(t, "W", GenderFromURL("https://x.example.com/2019/?page=3&search[sex]=W&num_results=25"))
	require.Equal(t, "", GenderFromURL("https://x.example.com/2019/?page=3"))
}

func TestParseResultsTableEra(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mika")
	defer cleanup()

	profile, err := Profile("london14_18")
	require.NoError(t, err)

	doc := docFromString(t, tableListingPage)
	url := "https://x.example.com/2016/?page=1&search[sex]=W&num_results=25"
	recs := ParseResults(context.Background(), doc, url, profile)

	// header and ad rows are skipped, runner rows survive
	require.Len(t, recs, 2)
	require.Equal(t, "9999990F5ECC85", recs[0].Idp)
	require.Equal(t, "17", recs[0].RunNo)
	require.Equal(t, "18-39", recs[0].AgeCat)
	require.Equal(t, "W", recs[0].Gender)
	require.Equal(t, "01:10:12", recs[0].Half)
	require.Equal(t, "02:21:41", recs[0].Finish)

	require.Equal(t, "9999990F5ED1A2", recs[1].Idp)
	require.Equal(t, "40-44", recs[1].AgeCat)
}

func TestParseResultsListEra(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mika")
	defer cleanup()

	profile, err := Profile("london19_23")
	require.NoError(t, err)

	doc := docFromString(t, listListingPage)
	url := "https://x.example.com/2019/?page=1&search[sex]=M&num_results=25"
	recs := ParseResults(context.Background(), doc, url, profile)

	require.Len(t, recs, 2)
	require.Equal(t, "AAA111BBB", recs[0].Idp)
	require.Equal(t, "1042", recs[0].RunNo)
	require.Equal(t, "45-49", recs[0].AgeCat)
	require.Equal(t, "M", recs[0].Gender)
	require.Equal(t, "01:45:00", recs[0].Half)
	// the finish field must not pick up the hidden-xs half element
	require.Equal(t, "03:30:21", recs[0].Finish)
}

func TestParseResultsEmptyPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:mika")
	defer cleanup()

	profile, err := Profile("london19_23")
	require.NoError(t, err)

	doc := docFromString(t, "<html><body><ul class=\"list-group\"></ul></body></html>")
	recs := ParseResults(context.Background(), doc, "?search[sex]=M&num_results=25", profile)
	require.Empty(t, recs)
}
