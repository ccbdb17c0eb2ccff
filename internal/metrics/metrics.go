// Package metrics 定义服务的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotesCreated 创建的笔记总数
	NotesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "echovault",
		Name:      "notes_created_total",
		Help:      "Total number of notes created.",
	})

	// EmbeddingsComputed 成功计算的向量总数
	EmbeddingsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "echovault",
		Name:      "embeddings_computed_total",
		Help:      "Total number of embeddings computed.",
	})

	// EmbeddingsUnavailable 向量提供方不可用的次数
	EmbeddingsUnavailable = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "echovault",
		Name:      "embeddings_unavailable_total",
		Help:      "Total number of embedding requests skipped because the provider was unavailable.",
	})

	// SearchQueries 语义搜索请求总数
	SearchQueries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "echovault",
		Name:      "search_queries_total",
		Help:      "Total number of semantic search queries.",
	})

	// PushResults 按结果分类的推送投递总数
	PushResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "echovault",
		Name:      "push_results_total",
		Help:      "Total number of push deliveries by result.",
	}, []string{"result"})

	// SubscriptionsCleaned 因端点失效被清理的订阅总数
	SubscriptionsCleaned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "echovault",
		Name:      "subscriptions_cleaned_total",
		Help:      "Total number of expired push subscriptions removed.",
	})
)
