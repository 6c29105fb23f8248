/*Package metrics wraps datadog-go to facilitate metric recording.
Naming convention:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/specieverse/goapi/base/env"
	"github.com/specieverse/goapi/base/log"
)

// buffer a few counters before sending to the statsd agent
const bufferMetrics = 10

// Ender finishes a timing started by BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

var (
	initOnce sync.Once
	client   statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

func initClient() {
	host := viper.GetString("datadog_host")
	if host == "" {
		client = &logClient{}
		return
	}
	addr := fmt.Sprintf("%s:%d", host, 8125)
	cli, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
	client = cli
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	return &impl{
		pkgName: pkgName,
		tags: []string{
			"host:", // remove unused host tag
			"pod:" + env.PodName(),
			"env:" + viper.GetString("env_name"),
			"app:" + viper.GetString("app_name"),
		},
	}
}

type impl struct {
	pkgName string
	tags    []string
}

func (mt *impl) allTags(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, 0, len(mt.tags)+len(tags)/2)
	arr = append(arr, mt.tags...)
	for i := 0; i < len(tags); i += 2 {
		arr = append(arr, tags[i]+":"+tags[i+1])
	}
	return arr
}

func (mt *impl) BumpAvg(key string, val float64, tags ...string) {
	initOnce.Do(initClient)
	if err := client.Gauge(mt.pkgName+"."+key, val, mt.allTags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("bump fail")
	}
}

func (mt *impl) BumpSum(key string, val float64, tags ...string) {
	initOnce.Do(initClient)
	if err := client.Count(mt.pkgName+"."+key, int64(val), mt.allTags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("bump fail")
	}
}

func (mt *impl) BumpHistogram(key string, val float64, tags ...string) {
	initOnce.Do(initClient)
	if err := client.Histogram(mt.pkgName+"."+key, val, mt.allTags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("bump fail")
	}
}

func (mt *impl) BumpTime(key string, tags ...string) Ender {
	initOnce.Do(initClient)
	return &timeTracker{
		start: time.Now(),
		key:   mt.pkgName + "." + key,
		tags:  mt.allTags(tags),
	}
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (tt *timeTracker) End() {
	dur := float64(time.Since(tt.start)) / float64(time.Millisecond)
	if err := client.TimeInMilliseconds(tt.key, dur, tt.tags, 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": tt.key}).Error("bump fail")
	}
}
