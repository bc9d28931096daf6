package article

import (
	"context"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/worker"
)

type extractJob struct {
	url       string
	extractor *Extractor
}

func (j *extractJob) Execute(ctx context.Context) worker.Result {
	res, err := j.extractor.Extract(ctx, j.url)
	if err != nil {
		return &extractResult{article: model.ExtractedArticle{URL: j.url, Error: err.Error()}, err: err}
	}
	return &extractResult{article: model.ExtractedArticle{
		URL:     j.url,
		Content: res.Content,
		Title:   res.Title,
		Excerpt: res.Excerpt,
	}}
}

type extractResult struct {
	article model.ExtractedArticle
	err     error
}

func (r *extractResult) GetError() error { return r.err }

// ExtractBatch extracts article content from many URLs concurrently. Every
// URL yields exactly one entry; failures carry an error string instead of
// content. An empty URL list is the one request-level rejection.
func (e *Extractor) ExtractBatch(ctx context.Context, urls []string, concurrency int) (*model.BatchExtractResult, error) {
	if len(urls) == 0 {
		return nil, model.ErrEmptyInput
	}
	if concurrency <= 0 {
		concurrency = 10
	}

	pool := worker.NewPool(concurrency)
	pool.Start()
	for _, u := range urls {
		pool.Submit(&extractJob{url: u, extractor: e})
	}
	results := pool.Wait()

	out := &model.BatchExtractResult{}
	for _, r := range results {
		er := r.(*extractResult)
		out.Articles = append(out.Articles, er.article)
		if er.err != nil {
			out.Failed++
		} else {
			out.Succeeded++
		}
	}

	return out, nil
}
