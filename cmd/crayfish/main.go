// Command crayfish loads a detector frame file, partitions its hits
// into clusters, and produces analysis output: per-cluster attribute
// listings, training-row export, label merge from a local database, and
// heatmap/scatter renderings.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/InstituteForResearchInSchools/crayfish/internal/pix"
	"github.com/InstituteForResearchInSchools/crayfish/internal/pixdb"
	"github.com/InstituteForResearchInSchools/crayfish/internal/pixio"
	"github.com/InstituteForResearchInSchools/crayfish/internal/pixplot"
)

var (
	framePath  = flag.String("file", "", "Frame file to load (required)")
	format     = flag.String("format", "auto", "Frame file format: auto, lsc or matrix")
	dbPath     = flag.String("db", "", "sqlite database path; when set the frame and its clusters are persisted")
	labelFrame = flag.Int64("load-labels", 0, "Merge manual labels for the given stored frame ID onto the loaded frame")
	training   = flag.String("training", "", "Write training rows to this file ('-' for stdout)")
	heatmap    = flag.String("heatmap", "", "Write a PNG energy heatmap of the frame to this file")
	zoomed     = flag.Bool("zoom", false, "Restrict the heatmap to the hit bounding box")
	scatter    = flag.String("scatter", "", "Write an HTML scatter of two cluster attributes to this file")
	scatterX   = flag.String("x", "Number of Hits", "X attribute for -scatter")
	scatterY   = flag.String("y", "Total Counts", "Y attribute for -scatter")
)

func main() {
	flag.Parse()
	if *framePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f := pixio.Format(*format)
	if *format == "auto" {
		f = pixio.GuessFormat(*framePath)
	}
	frame, err := pixio.LoadFile(*framePath, f)
	if err != nil {
		log.Fatalf("load frame: %v", err)
	}

	clusters := frame.Clusters()
	log.Printf("loaded %s: %d hits, %d clusters", *framePath, frame.NumHits(), len(clusters))

	var db *pixdb.DB
	if *dbPath != "" {
		db, err = pixdb.Open(*dbPath)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()
	}

	if *labelFrame != 0 {
		if db == nil {
			log.Fatal("-load-labels requires -db")
		}
		labels, err := db.LoadLabels(*labelFrame)
		if err != nil {
			log.Fatalf("load labels: %v", err)
		}
		pix.LoadTrainingData(frame, labels)
		log.Printf("merged %d labels from frame %d", len(labels), *labelFrame)
	}

	if db != nil {
		frameID, err := db.SaveFrame(frame, *framePath)
		if err != nil {
			log.Fatalf("save frame: %v", err)
		}
		log.Printf("saved frame %d with %d clusters", frameID, len(clusters))
	}

	if *training != "" {
		if err := writeTraining(frame, *training); err != nil {
			log.Fatalf("export training rows: %v", err)
		}
	}

	if *heatmap != "" {
		if err := writeHeatmap(frame, *heatmap); err != nil {
			log.Fatalf("render heatmap: %v", err)
		}
		log.Printf("wrote heatmap to %s", *heatmap)
	}

	if *scatter != "" {
		if err := writeScatter(frame, *scatter); err != nil {
			log.Fatalf("render scatter: %v", err)
		}
		log.Printf("wrote scatter to %s", *scatter)
	}

	if *training == "" && *heatmap == "" && *scatter == "" {
		printClusterTable(frame)
	}
}

func writeTraining(frame *pix.Frame, path string) error {
	rows := pix.TrainingRows(frame)
	if path == "-" {
		fmt.Println(rows)
		return nil
	}
	return os.WriteFile(path, []byte(rows+"\n"), 0644)
}

func writeHeatmap(frame *pix.Frame, path string) error {
	if *zoomed {
		return pixplot.EnergyHeatmapZoomed(frame.Grid(), nil, *framePath, path)
	}
	return pixplot.EnergyHeatmap(frame.Grid(), *framePath, path)
}

func writeScatter(frame *pix.Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return pixplot.ClusterScatterHTML(frame, *scatterX, *scatterY, out)
}

func printClusterTable(frame *pix.Frame) {
	attrs := pix.Attributes(pix.KindCluster, pix.Filter{PlottableOnly: true})
	for i, cluster := range frame.Clusters() {
		fmt.Printf("cluster %d (%s):\n", i, cluster.ID)
		for _, a := range attrs {
			fmt.Printf("  %-16s %v\n", a.Name, a.Compute(cluster))
		}
	}
}
