package service

import "github.com/prometheus/client_golang/prometheus"

var itemMutations = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "wtwr_item_mutations_total", Help: "Successful item mutations by operation"},
	[]string{"op"},
)

func init() { prometheus.MustRegister(itemMutations) }
