/*Package interval defines the engine's primitive value types: a stranded
  genomic interval with 1-based inclusive coordinates, the tri-state Strand
  enum, and the sorted-endpoint representation of interval unions used by the
  set-algebra routines.
  Intervals are plain immutable values; collections of them, with metadata
  columns attached, live in the granges package.
*/
package interval
