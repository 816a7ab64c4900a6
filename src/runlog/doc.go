// Package runlog decodes and encodes the binary metric logs written by a training run.
//
// A log holds three header scalars followed by four metric arrays of equal length:
//
//	Variant A (legacy, untagged):
//	  [8 bytes: epoch count (uint64 LE)]
//	  [8 bytes: minibatch size (uint64 LE)]
//	  [4 bytes: learning rate (float32 LE)]
//	  [4 × epochs × 4 bytes: costs_train, accuracy_train, costs_test, accuracy_test (float32 LE)]
//
//	Variant B (legacy, untagged): same layout with a float64 learning rate and float64 metrics.
//
//	Tagged:
//	  [4 bytes: Magic "NNTL"]
//	  [4 bytes: Version (uint32 LE); 1 = variant A body, 2 = variant B body]
//	  [variant body]
//
// Legacy files carry nothing that identifies their variant, so the caller must name it
// (LayoutLegacyF32 or LayoutLegacyF64). Nothing is guessed.
//
// Example usage:
//
//	run, err := runlog.ReadFile("train_30_0.01_8.out", runlog.Options{Layout: runlog.LayoutLegacyF32})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(run.Header().Epochs, run.CostsTest())
package runlog
