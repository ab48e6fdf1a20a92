package translate

import (
	"context"
	"errors"
	"fmt"

	"edgetrans/internal/chunk"
	"edgetrans/internal/client"
)

// translateChunk runs the attempt loop for one chunk. Throttle responses cool
// the shared pacer down and retry without touching the retry budget; any
// other remote error refreshes the token and spends one unit of budget.
func (e *Edge) translateChunk(ctx context.Context, ch chunk.Chunk, to Language, c call) ([]Result, error) {
	key := ""
	if e.cache != nil {
		key = chunkKey(c.from, to, ch.Items)
		if res, ok := e.cache.get(key); ok {
			e.log.Debug("chunk cache hit", "chunk", ch.Index, "items", len(res))
			return res, nil
		}
	}

	req := client.NewTranslateRequest(string(c.from), string(to), ch.Items)
	budget := c.retry
	throttled := 0
	for attempt := 1; ; attempt++ {
		if err := e.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		e.log.Debug("dispatch chunk", "chunk", ch.Index, "items", len(ch.Items), "attempt", attempt)
		items, err := e.api.Translate(ctx, e.auth.Token(), req)
		if err == nil {
			res, err := collect(ch, items, c.from)
			if err != nil {
				return nil, err
			}
			e.cache.set(key, res)
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		var remote *client.RemoteError
		if !errors.As(err, &remote) {
			return nil, classify(ch.Index, err)
		}
		if remote.RateLimited() {
			if throttled >= e.opts.MaxThrottleRetries {
				return nil, remoteFailure(ErrRateLimitExceeded, ch.Index, remote)
			}
			throttled++
			e.log.Warn("throttled by server", "chunk", ch.Index, "attempt", attempt, "cooldown", e.opts.Cooldown)
			e.pacer.Cooldown(e.opts.Cooldown)
			if err := e.refresh(ctx, ch.Index); err != nil {
				return nil, err
			}
			continue
		}
		if budget == 0 {
			return nil, remoteFailure(ErrTranslationFailed, ch.Index, remote)
		}
		budget--
		e.log.Warn("chunk failed, retrying", "chunk", ch.Index, "attempt", attempt, "code", remote.Code, "left", budget)
		if err := e.refresh(ctx, ch.Index); err != nil {
			return nil, err
		}
	}
}

func (e *Edge) refresh(ctx context.Context, chunkIndex int) error {
	if err := e.auth.Refresh(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return newError(ErrAuthFetch, chunkIndex, err)
	}
	return nil
}

// collect pairs each translated item with its source language. Without an
// explicit source the whole chunk takes the first detected language.
func collect(ch chunk.Chunk, items []client.TranslateItem, from Language) ([]Result, error) {
	if len(items) != len(ch.Items) {
		return nil, &Error{
			Kind:    ErrProtocol,
			Chunk:   ch.Index,
			Message: fmt.Sprintf("sent %d items, got %d back", len(ch.Items), len(items)),
		}
	}
	lang := from
	if lang == "" {
		lang = detected(items)
	}
	out := make([]Result, len(items))
	for i, it := range items {
		if len(it.Translations) == 0 {
			return nil, &Error{
				Kind:    ErrProtocol,
				Chunk:   ch.Index,
				Message: fmt.Sprintf("item %d has no translations", i),
			}
		}
		out[i] = Result{Text: it.Translations[0].Text, Lang: lang}
	}
	return out, nil
}

func detected(items []client.TranslateItem) Language {
	for _, it := range items {
		if it.DetectedLanguage != nil && it.DetectedLanguage.Language != "" {
			return Language(it.DetectedLanguage.Language)
		}
	}
	return ""
}

func classify(chunkIndex int, err error) error {
	var de *client.DecodeError
	if errors.As(err, &de) {
		return newError(ErrProtocol, chunkIndex, err)
	}
	return newError(ErrTransport, chunkIndex, err)
}

func remoteFailure(kind error, chunkIndex int, remote *client.RemoteError) error {
	return &Error{
		Kind:    kind,
		Chunk:   chunkIndex,
		Code:    remote.Code,
		Message: remote.Message,
		Err:     remote,
	}
}
