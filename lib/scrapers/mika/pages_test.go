package mika

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const oldPaginationPage = `
<html><body>
<a href="?page=1">Results</a>
<table><tr><td>...</td></tr></table>
<div class="pages">
  <a href="?page=1">1</a>
  <a href="?page=2">2</a>
  <a href="?page=25">25</a>
  <a href="?page=2">&gt;</a>
</div>
</body></html>`

const newPaginationPage = `
<html><body>
<ul class="pagination">
  <a href="?page=1">1</a>
  <a href="?page=2">2</a>
  <a href="?page=118">118</a>
  <a href="?page=2">&gt;</a>
</ul>
<footer>
  <a href="/imprint">Imprint</a>
  <a href="/privacy">Privacy</a>
  <a href="/contact">Contact</a>
</footer>
</body></html>`

func TestMaxPagesFromDocOldEra(t *testing.T) {
	profile, err := Profile("london14_18")
	require.NoError(t, err)

	doc := docFromString(t, oldPaginationPage)
	pages, err := maxPagesFromDoc(doc, profile)
	require.NoError(t, err)
	require.Equal(t, 25, pages)
}

func TestMaxPagesFromDocNewEra(t *testing.T) {
	profile, err := Profile("london19_23")
	require.NoError(t, err)

	doc := docFromString(t, newPaginationPage)
	pages, err := maxPagesFromDoc(doc, profile)
	require.NoError(t, err)
	require.Equal(t, 118, pages)
}

func TestMaxPagesFromDocMissingControl(t *testing.T) {
	profile, err := Profile("london19_23")
	require.NoError(t, err)

	doc := docFromString(t, "<html><body><a>1</a></body></html>")
	_, err = maxPagesFromDoc(doc, profile)
	require.Error(t, err)
}

func TestProfileLookup(t *testing.T) {
	for _, name := range ProfileNames() {
		p, err := Profile(name)
		require.NoError(t, err)
		require.NotEmpty(t, p.Marathon)
		require.NotEmpty(t, p.Results.RowSel)
	}

	_, err := Profile("paris99")
	require.Error(t, err)
}
