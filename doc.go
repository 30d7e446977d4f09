// Package rosomaxa implements the adaptive population manager used by
// evolutionary Vehicle Routing Problem solvers: Routing Optimization with
// Self-Organizing MAps and eXtrAs.
//
// It maintains the working set of candidate solutions a driver breeds
// further solutions from, steering the search between exploration (broad
// coverage of the solution landscape) and exploitation (refinement near
// the best solutions found so far) through three cooperating pieces: a
// bounded Pareto elitism archive, a Growing Self-Organizing Map (GSOM)
// trained online on solution weight vectors, and a phase controller that
// reconfigures both based on runtime statistics.
//
// Reference:
// Alahakoon, D., Halgamuge, S. K., & Srinivasan, B. (2000). Dynamic self
// organizing maps with controlled growth for knowledge discovery.
// IEEE Transactions on Neural Networks, 11(3), 601-614.
//
// VRP problem modeling, local-search operators, recreate/ruin heuristics,
// concrete objectives, termination criteria, telemetry, I/O, and the outer
// evolutionary driver loop are external collaborators and out of scope for
// this package.
package rosomaxa
