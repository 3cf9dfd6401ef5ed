// Package geom holds the small value types shared by the splitter: a
// float32 vector with bit-exact identity, a directed edge between two such
// vectors, and AngleRank, an order-preserving substitute for atan2.
package geom
