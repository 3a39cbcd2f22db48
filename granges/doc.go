/*Package granges implements the engine's central container, Set: an ordered
  collection of stranded genomic intervals with typed, index-aligned metadata
  columns, plus the set-algebra operations over it (Reduce, Disjoin, Gaps).
  Sets are built once and queried many times; every operation returns a new
  Set, so built Sets are safe for concurrent readers.
*/
package granges
