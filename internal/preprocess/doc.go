// Package preprocess provides a framework for executing data cleaning
// steps in sequence.
//
// The pipeline pattern is used to take a raw dataset through multiple
// stages: missing value imputation, outlier handling, categorical
// encoding, numeric scaling, and feature creation. Each stage is
// implemented as a Step that receives the current state and can modify
// both the data and the accumulated summary.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running transformations
// 4. The executed step order is recorded in the summary for reproducibility
package preprocess
