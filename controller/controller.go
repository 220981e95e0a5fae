package controller

import (
	"context"
	"log"
	"time"

	"github.com/Shadab909/couchbase-cluster-report-automation/config"
	"github.com/Shadab909/couchbase-cluster-report-automation/internal/adapter"
	"github.com/Shadab909/couchbase-cluster-report-automation/internal/couchbase"
	"github.com/Shadab909/couchbase-cluster-report-automation/internal/dataset"
	"github.com/Shadab909/couchbase-cluster-report-automation/internal/dispatch"
	"github.com/Shadab909/couchbase-cluster-report-automation/internal/extractor"
	"github.com/Shadab909/couchbase-cluster-report-automation/internal/nats"
	"github.com/Shadab909/couchbase-cluster-report-automation/internal/report"
	"github.com/Shadab909/couchbase-cluster-report-automation/model"
)

type Fetcher interface {
	FetchNodeList(ctx context.Context) ([]model.PoolNode, error)
	FetchNodeDetail(ctx context.Context, hostname string) (model.NodeDetail, error)
}

type SnapshotPublisher interface {
	PublishSnapshot(bucket, key string, snapshot model.HealthSnapshot) error
}

var (
	GetClusterInfos = adapter.GetClusterInfos

	NewFetcher = func(cred model.ClusterCredential) Fetcher { return couchbase.NewClient(cred) }
	NewMailer  = func() dispatch.Mailer { return dispatch.NewSMTPMailer() }
	NewNatsClient = func() SnapshotPublisher {
		if c := nats.NewClient(); c != nil {
			return c
		}
		return nil
	}

	ExtractFunc = extractor.Extract
	NowFunc     = time.Now
)

// RunReport executes one full collection-and-reporting pass. The returned
// error is non-nil only when at least one report delivery failed; fetch
// failures degrade into placeholder rows and archival/publish failures are
// logged without affecting the outcome.
func RunReport(ctx context.Context) error {
	now := NowFunc()
	date := now.Format("2006-01-02")
	shift := dispatch.ClassifyShift(now.Hour())

	clusters, err := GetClusterInfos()
	if err != nil {
		log.Fatalf("Cluster configuration lookup failed: %v", err)
	}

	builder := dataset.NewBuilder()
	captions := make([]string, 0, len(clusters))

	for _, cluster := range clusters {
		builder.StartGroup()
		captions = append(captions, cluster.DisplayName)

		fetcher := NewFetcher(cluster)
		nodes, err := fetcher.FetchNodeList(ctx)
		if err != nil {
			log.Printf("Node list fetch failed for %s: %v", cluster.DisplayName, err)
			builder.Append(extractor.ErrorRecord(date, string(shift), cluster.DisplayName))
			continue
		}

		for _, node := range nodes {
			detail, err := fetcher.FetchNodeDetail(ctx, node.Hostname)
			if err != nil {
				log.Printf("Node detail fetch failed for %s/%s: %v", cluster.DisplayName, node.Hostname, err)
				builder.Append(extractor.FailureRecord(date, string(shift), cluster.DisplayName, node.Hostname))
				continue
			}
			builder.Append(ExtractFunc(detail, date, string(shift), cluster.DisplayName))
		}
	}

	if path, err := builder.Archive(config.Env.OutputDir, date); err != nil {
		log.Printf("Dataset archive failed: %v", err)
	} else {
		log.Printf("Dataset archived to %s", path)
	}

	document := report.Render(builder.Rows(), captions, now)
	subject := "Couchbase Cluster Health Report - " + date

	deliveryErr := dispatch.Deliver(NewMailer(), subject, document, dispatch.SelectRecipients(shift))

	publishSnapshot(builder.Records(), now)

	return deliveryErr
}

func publishSnapshot(records []model.MetricRecord, now time.Time) {
	if config.Env.NatsUrl == "" {
		return
	}
	client := NewNatsClient()
	if client == nil {
		return
	}

	snapshot := model.HealthSnapshot{Time: now.UTC(), Records: records}
	if err := client.PublishSnapshot(config.Env.NatsBucketName, config.Env.NatsKeyName, snapshot); err != nil {
		log.Printf("Snapshot publish failed: %v", err)
	} else {
		log.Printf("Snapshot published")
	}
}

var repeatTime time.Duration = 24 * time.Hour

// RepeatReport runs the report on a fixed interval until the context is
// cancelled. Per-run delivery failures are logged; the loop keeps going.
func RepeatReport(ctx context.Context) {
	if config.Env.ReportIntervalMinutes > 0 {
		repeatTime = time.Duration(config.Env.ReportIntervalMinutes) * time.Minute
	}
	ticker := time.NewTicker(repeatTime)
	defer ticker.Stop()

	for {
		if err := RunReport(ctx); err != nil {
			log.Printf("Report run finished with delivery failures: %v", err)
		} else {
			log.Printf("Report run complete")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
