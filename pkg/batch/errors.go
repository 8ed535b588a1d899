package batch

import "errors"

// ErrExceedMaxBatchNum is returned by Commit when the number of staged
// writes exceeds WriteBatchOptions.MaxBatchNum.
var ErrExceedMaxBatchNum = errors.New("batch: pending write count exceeds max_batch_num")
