// Package bench runs YAML-described workloads against a vector and reports
// timings and storage statistics.
//
// A workload is a list of steps such as "append 1000" or "remove_ordered 50"
// applied in order to a Vector[int64]. The vector's growth policy and
// allocator come from the config, so the same workload can be replayed
// under different storage strategies and compared.
package bench
