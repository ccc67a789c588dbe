package client

import (
	"context"
	"sync"

	"github.com/llmc-dev/llmc/providers/ai"
	"github.com/llmc-dev/llmc/providers/observability"
)

// defaultBatchWorkers bounds batch concurrency when the caller does not set
// one via WithWorkers.
const defaultBatchWorkers = 4

// BatchChat runs independent non-streaming chat calls concurrently, bounded
// by the worker limit, and returns one result per conversation in submission
// order regardless of completion order.
//
// A failing item does not abort its siblings: its slot holds the error
// message as a placeholder string. Callers wanting hard-fail semantics must
// inspect the results themselves. The streaming path is deliberately not
// offered in batch mode.
func (routingClient *Client) BatchChat(ctx context.Context, conversations [][]ai.Message, options ...CallOption) []string {
	results := make([]string, len(conversations))
	if len(conversations) == 0 {
		return results
	}

	settings := applyOptions(options)
	workers := settings.workers
	if workers <= 0 {
		workers = defaultBatchWorkers
	}

	routingClient.log.Info("batch chat started",
		observability.Int(observability.AttrBatchSize, len(conversations)),
		observability.Int(observability.AttrBatchWorkers, workers),
	)

	var waitGroup sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for index, conversation := range conversations {
		waitGroup.Add(1)
		go func(index int, conversation []ai.Message) {
			defer waitGroup.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			// Each worker exclusively owns its slot in the pre-sized
			// results slice, so no lock is needed.
			content, err := routingClient.Chat(ctx, conversation, options...)
			if err != nil {
				routingClient.log.Error("batch item failed",
					observability.Int(observability.AttrBatchIndex, index),
					observability.Error(err),
				)
				results[index] = err.Error()
				return
			}
			results[index] = content
		}(index, conversation)
	}

	waitGroup.Wait()

	routingClient.log.Debug("batch chat finished",
		observability.Int(observability.AttrBatchSize, len(results)),
	)
	return results
}

// EmbedMultimodalBatch embeds multiple multimodal inputs concurrently,
// bounded by the worker limit, returning vectors in input order. Unlike
// BatchChat, a failing item fails the whole batch: embeddings feed
// downstream similarity math where a placeholder vector would silently
// corrupt results.
func (routingClient *Client) EmbedMultimodalBatch(ctx context.Context, blockSets [][]ai.ContentBlock, options ...CallOption) ([][]float64, error) {
	vectors := make([][]float64, len(blockSets))
	if len(blockSets) == 0 {
		return vectors, nil
	}

	settings := applyOptions(options)
	workers := settings.workers
	if workers <= 0 {
		workers = defaultBatchWorkers
	}

	var waitGroup sync.WaitGroup
	semaphore := make(chan struct{}, workers)
	errs := make([]error, len(blockSets))

	for index, blocks := range blockSets {
		waitGroup.Add(1)
		go func(index int, blocks []ai.ContentBlock) {
			defer waitGroup.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			vector, err := routingClient.EmbedMultimodal(ctx, blocks, options...)
			if err != nil {
				errs[index] = err
				return
			}
			vectors[index] = vector
		}(index, blocks)
	}

	waitGroup.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return vectors, nil
}
