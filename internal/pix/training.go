package pix

import (
	"fmt"
	"strings"
)

// TrainingRows serialises one comma-separated row per manually
// classified cluster of frame: the cluster's identity token, its manual
// class, then the value of every Cluster-applicable trainable attribute
// in registration order. Rows are newline-joined. Clusters still labelled
// Unclassified are silently excluded. Clustering is triggered if it has
// not run yet.
func TrainingRows(frame *Frame) string {
	attrs := Attributes(KindCluster, Filter{TrainableOnly: true})

	var rows []string
	for _, cluster := range frame.Clusters() {
		if cluster.ManualClass == Unclassified {
			continue
		}
		record := make([]string, 0, 2+len(attrs))
		record = append(record, cluster.ID, cluster.ManualClass)
		for _, a := range attrs {
			record = append(record, fmt.Sprint(a.Compute(cluster)))
		}
		rows = append(rows, strings.Join(record, ","))
	}
	return strings.Join(rows, "\n")
}

// TrainingHeader returns the column names of TrainingRows output:
// identity, label, then the trainable cluster attributes in registration
// order.
func TrainingHeader() []string {
	attrs := Attributes(KindCluster, Filter{TrainableOnly: true})
	header := make([]string, 0, 2+len(attrs))
	header = append(header, "cluster_id", "manual_class")
	for _, a := range attrs {
		header = append(header, a.Name)
	}
	return header
}

// LoadTrainingData merges an externally supplied identity → label map
// onto frame's clusters, setting ManualClass on each cluster whose ID
// appears in labels. Identities with no matching cluster are ignored
// without error. Clustering is triggered if it has not run yet.
func LoadTrainingData(frame *Frame, labels map[string]string) {
	for _, cluster := range frame.Clusters() {
		if label, ok := labels[cluster.ID]; ok {
			cluster.ManualClass = label
		}
	}
}

// ParseTrainingRows inverts TrainingRows far enough to recover the
// identity → label map from previously exported rows. Used to round-trip
// labels through external storage.
func ParseTrainingRows(rows string) map[string]string {
	labels := make(map[string]string)
	for _, row := range strings.Split(rows, "\n") {
		if row == "" {
			continue
		}
		fields := strings.SplitN(row, ",", 3)
		if len(fields) < 2 {
			continue
		}
		labels[fields[0]] = fields[1]
	}
	return labels
}
