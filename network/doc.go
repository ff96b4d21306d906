// Package network models a piping network as a directed graph.
//
// A Network owns Nodes (junctions), Segments (the edges) and, in analysis
// mode, Loops (closed circuits the Hardy-Cross solver corrects). Nodes are
// created lazily when a segment references them and are never deleted.
//
// Segment kinds form a closed variant behind the Element interface:
//
//   - *Pipe:   a straight pipe with optional fittings, balancing valve and control valve.
//   - *Pump:   a pipe plus a quadratic pump curve.
//   - *Pseudo: a fixed pressure difference that closes an open network; it
//     carries no flow and is excluded from real hydraulic totals.
//
// Flow direction:
//
//	Every segment stores a flow magnitude and a sign. Sign +1 means the fluid
//	moves from Start to End. Each loop membership carries an orientation that
//	is +1 when the loop's positive sense also runs Start to End. A segment
//	shared by two loops is traversed in opposite senses by them.
//
// FlowPath is an ordered list of segments from the supply node to the exit
// node; its heads are always computed from current segment state.
//
// Errors:
//
//   - ErrDuplicateSegment, ErrWrongMode, ErrSegmentNotFound, ErrPseudoSegment,
//     ErrSharedSegment  wrap pipenet.ErrInvalidConfiguration.
//   - *SegmentError adds the segment id to any error raised by segment physics.
//
// A Network is not safe for concurrent mutation.
package network
