// Package boost implements a gradient-boosted ensemble of regression trees
// for the log-price target. The ensemble starts from the training-target
// mean and fits each tree to the residuals of the previous ensemble under
// squared loss, shrunk by a fixed learning rate.
//
// Training is deterministic for a fixed seed: split search evaluates
// features concurrently but reduces them in feature-index order, so internal
// parallelism never changes the fitted model.
package boost
