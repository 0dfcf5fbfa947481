package sources

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tapas-dl/pkg/data"
)

const comicPage = `<html><body>
	<article class="viewer__body">
		<img class="content__img" src="https://cdn.tapas.io/pages/001.jpg?type=q90&size=w1000">
		<img class="content__img" src="https://cdn.tapas.io/pages/002.jpg?type=q90">
		<img class="banner" src="https://cdn.tapas.io/banner.jpg">
	</article>
</body></html>`

const novelPage = `<html><body>
	<article class="viewer__body">
		<p>It was a dark and stormy night.</p>
		<p>   </p>
		<p>The rain fell in torrents.</p>
	</article>
	<div><p>Comments do not count.</p></div>
</body></html>`

func TestClassifyComic(t *testing.T) {
	payload, err := Classify(strings.NewReader(comicPage))
	assert.NoError(t, err)
	assert.Equal(t, data.ImageGallery, payload.Kind)
	assert.Equal(t, []string{
		"https://cdn.tapas.io/pages/001.jpg",
		"https://cdn.tapas.io/pages/002.jpg",
	}, payload.Images)
	assert.Empty(t, payload.Paragraphs)
}

func TestClassifyNovel(t *testing.T) {
	payload, err := Classify(strings.NewReader(novelPage))
	assert.NoError(t, err)
	assert.Equal(t, data.Prose, payload.Kind)
	assert.Equal(t, []string{
		"It was a dark and stormy night.",
		"The rain fell in torrents.",
	}, payload.Paragraphs)
	assert.Equal(t, "It was a dark and stormy night.\n\nThe rain fell in torrents.", payload.Text())
}

func TestClassifyImagesWinOverText(t *testing.T) {
	page := `<html><body>
		<article class="viewer__body">
			<p>A caption under the art.</p>
			<img class="content__img" src="https://cdn.tapas.io/pages/001.jpg">
		</article>
	</body></html>`

	payload, err := Classify(strings.NewReader(page))
	assert.NoError(t, err)
	assert.Equal(t, data.ImageGallery, payload.Kind)
	assert.Len(t, payload.Images, 1)
}

func TestClassifyLazyLoadedImages(t *testing.T) {
	page := `<html><body>
		<img class="content__img" data-src="https://cdn.tapas.io/pages/001.jpg?type=q90">
		<img class="content__img" src="" data-src="https://cdn.tapas.io/pages/002.jpg">
		<img class="content__img">
	</body></html>`

	payload, err := Classify(strings.NewReader(page))
	assert.NoError(t, err)
	assert.Equal(t, data.ImageGallery, payload.Kind)
	assert.Equal(t, []string{
		"https://cdn.tapas.io/pages/001.jpg",
		"https://cdn.tapas.io/pages/002.jpg",
	}, payload.Images)
}

func TestClassifyEmptyPage(t *testing.T) {
	payload, err := Classify(strings.NewReader(`<html><body><div>locked</div></body></html>`))
	assert.NoError(t, err)
	assert.Equal(t, data.Prose, payload.Kind)
	assert.Empty(t, payload.Paragraphs)
	assert.Equal(t, "", payload.Text())
}
