package handlers

import (
	"log"
	"math"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"

	"github.com/23himanshusingh/network-inventory-manager/internal/database"
	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

type StatsResponse struct {
	Headends         int64          `json:"headends"`
	FDHs             int64          `json:"fdhs"`
	Splitters        int64          `json:"splitters"`
	Customers        int64          `json:"customers"`
	CustomersByState map[string]int `json:"customers_by_status"`
	Assets           int64          `json:"assets"`
	AssetsByStatus   map[string]int `json:"assets_by_status"`
	AssetsByType     map[string]int `json:"assets_by_type"`
	PortCapacity     int64          `json:"port_capacity"`
	PortsUsed        int64          `json:"ports_used"`
	OpenTasks        int64          `json:"open_tasks"`
	LastUpdated      time.Time      `json:"last_updated"`
}

var (
	statsCache      *StatsResponse
	statsCacheMutex sync.Mutex
	statsLastUpdate time.Time
)

// InvalidateStatsCache drops the cached dashboard numbers.
func InvalidateStatsCache() {
	statsCacheMutex.Lock()
	defer statsCacheMutex.Unlock()
	statsCache = nil
	log.Println("[Stats] Cache invalidated")
}

func GetStats(c *fiber.Ctx) error {
	statsCacheMutex.Lock()
	defer statsCacheMutex.Unlock()

	forceRefresh := c.Query("forceRefresh", "") == "true"

	// If cache is fresh (less than 1 min old) and not forced, return it
	if statsCache != nil && !forceRefresh && time.Since(statsLastUpdate) < 1*time.Minute {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    statsCache,
			"cached":  true,
		})
	}

	log.Println("[Stats] Calculating dashboard stats...")

	stats := &StatsResponse{
		CustomersByState: make(map[string]int),
		AssetsByStatus:   make(map[string]int),
		AssetsByType:     make(map[string]int),
		LastUpdated:      time.Now(),
	}

	database.DB.Model(&models.Headend{}).Count(&stats.Headends)
	database.DB.Model(&models.FDH{}).Count(&stats.FDHs)
	database.DB.Model(&models.Splitter{}).Count(&stats.Splitters)
	database.DB.Model(&models.Customer{}).Count(&stats.Customers)
	database.DB.Model(&models.Asset{}).Count(&stats.Assets)

	rows, err := database.DB.Model(&models.Customer{}).Select("status, count(*)").Group("status").Rows()
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var status string
			var count int
			rows.Scan(&status, &count)
			stats.CustomersByState[status] += count
		}
	}

	rows2, err := database.DB.Model(&models.Asset{}).Select("status, count(*)").Group("status").Rows()
	if err == nil {
		defer rows2.Close()
		for rows2.Next() {
			var status string
			var count int
			rows2.Scan(&status, &count)
			stats.AssetsByStatus[status] += count
		}
	}

	rows3, err := database.DB.Model(&models.Asset{}).Select("asset_type, count(*)").Group("asset_type").Rows()
	if err == nil {
		defer rows3.Close()
		for rows3.Next() {
			var assetType string
			var count int
			rows3.Scan(&assetType, &count)
			stats.AssetsByType[assetType] += count
		}
	}

	var capacitySum, usedSum struct{ Total int64 }
	database.DB.Model(&models.Splitter{}).Select("coalesce(sum(port_capacity), 0) as total").Scan(&capacitySum)
	database.DB.Model(&models.Splitter{}).Select("coalesce(sum(used_ports), 0) as total").Scan(&usedSum)
	stats.PortCapacity = capacitySum.Total
	stats.PortsUsed = usedSum.Total

	database.DB.Model(&models.DeploymentTask{}).
		Where("status IN ?", []models.TaskStatus{models.TaskScheduled, models.TaskInProgress}).
		Count(&stats.OpenTasks)

	statsCache = stats
	statsLastUpdate = time.Now()

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
		"cached":  false,
	})
}

type SystemStatus struct {
	Hostname       string  `json:"hostname"`
	OS             string  `json:"os"`
	Uptime         uint64  `json:"uptime"`
	CPUUsage       float64 `json:"cpu_usage"`
	CPUCores       int     `json:"cpu_cores"`
	MemTotal       uint64  `json:"mem_total"`
	MemUsed        uint64  `json:"mem_used"`
	MemUsedPercent float64 `json:"mem_used_percent"`
	DiskTotal      uint64  `json:"disk_total"`
	DiskUsed       uint64  `json:"disk_used"`
	DiskPercent    float64 `json:"disk_percent"`
	ProcessMem     uint64  `json:"process_mem"`
	ProcessCPU     float64 `json:"process_cpu"`
	NumGoroutine   int     `json:"num_goroutine"`
	GoVersion      string  `json:"go_version"`
	Database       string  `json:"database"`
}

// GetSystemStatus reports host and process health for the ops dashboard.
func GetSystemStatus(c *fiber.Ctx) error {
	info := SystemStatus{}

	info.Hostname, _ = os.Hostname()
	info.GoVersion = runtime.Version()
	info.NumGoroutine = runtime.NumGoroutine()
	info.CPUCores = runtime.NumCPU()
	info.OS = runtime.GOOS + "/" + runtime.GOARCH

	cpuPercent, err := cpu.Percent(0, false)
	if err == nil && len(cpuPercent) > 0 {
		info.CPUUsage = math.Round(cpuPercent[0]*100) / 100
	}

	memInfo, err := mem.VirtualMemory()
	if err == nil {
		info.MemTotal = memInfo.Total
		info.MemUsed = memInfo.Used
		info.MemUsedPercent = math.Round(memInfo.UsedPercent*100) / 100
	}

	diskInfo, err := disk.Usage("/")
	if err == nil {
		info.DiskTotal = diskInfo.Total
		info.DiskUsed = diskInfo.Used
		info.DiskPercent = math.Round(diskInfo.UsedPercent*100) / 100
	}

	hostInfo, err := host.Info()
	if err == nil {
		info.Uptime = hostInfo.Uptime
	}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if pcpu, err := p.CPUPercent(); err == nil {
			info.ProcessCPU = math.Round(pcpu*100) / 100
		}
		if pmem, err := p.MemoryInfo(); err == nil {
			info.ProcessMem = pmem.RSS
		}
	}

	info.Database = "offline"
	if database.DB != nil {
		sqlDB, err := database.DB.DB()
		if err == nil && sqlDB.Ping() == nil {
			info.Database = "online"
		}
	}

	return c.JSON(info)
}
