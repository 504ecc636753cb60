package seed

import (
	"github.com/mustardworks/portfolio-api/internal/core/domain"
	"github.com/mustardworks/portfolio-api/internal/core/ports"
)

func unsplash(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?w=800&h=600&fit=crop"
}

// showcase is the sample gallery shown on a fresh install, two per category.
var showcase = []ports.CreateGalleryInput{
	{
		Title:       "Smart IoT Home Automation",
		Description: "Wi-Fi relay modules and a phone dashboard for lights, fans and door locks, with schedules and energy reporting.",
		Category:    domain.CategoryIoT,
		Image:       unsplash("1558002038-1055907df827"),
	},
	{
		Title:       "Electric Vehicle Charging Station",
		Description: "Level 2 charger controller with metering, RFID sessions and remote monitoring over OCPP.",
		Category:    domain.CategoryEVehicles,
		Image:       unsplash("1593941707882-a5bba14938c7"),
	},
	{
		Title:       "AI-Powered Healthcare Diagnostics",
		Description: "Image classification pipeline that flags anomalies in chest X-rays for radiologist review.",
		Category:    domain.CategoryAI,
		Image:       unsplash("1576091160399-112ba8d25d1d"),
	},
	{
		Title:       "Arduino-Based Weather Station",
		Description: "Solar powered sensor node logging temperature, humidity, pressure and rainfall to the cloud.",
		Category:    domain.CategoryHardware,
		Image:       unsplash("1559827260-dc66d52bef19"),
	},
	{
		Title:       "Cloud-Native Microservices Platform",
		Description: "Containerised order management backend with autoscaling, tracing and blue-green deploys.",
		Category:    domain.CategorySoftware,
		Image:       unsplash("1451187580459-43490279c0fa"),
	},
	{
		Title:       "FPGA-Based Signal Processor",
		Description: "Real-time FIR filtering and FFT on an FPGA for software defined radio experiments.",
		Category:    domain.CategoryVLSI,
		Image:       unsplash("1518770660439-4636190af475"),
	},
	{
		Title:       "Smart Agriculture IoT System",
		Description: "Soil moisture mesh network driving drip irrigation valves with per-zone thresholds.",
		Category:    domain.CategoryIoT,
		Image:       unsplash("1625246333195-78d9c38ad449"),
	},
	{
		Title:       "Autonomous Delivery Robot",
		Description: "Battery electric campus rover with lidar navigation and a lockable cargo bay.",
		Category:    domain.CategoryEVehicles,
		Image:       unsplash("1485827404703-89b55fcc595e"),
	},
	{
		Title:       "Computer Vision Quality Inspection",
		Description: "Camera line inspection that rejects defective parts on a conveyor at full production speed.",
		Category:    domain.CategoryAI,
		Image:       unsplash("1535378620166-273708d44e4c"),
	},
	{
		Title:       "Custom PCB Design for Wearables",
		Description: "Four layer flex-rigid board with BLE, IMU and wireless charging for a fitness band.",
		Category:    domain.CategoryHardware,
		Image:       unsplash("1550745165-9bc0b252726f"),
	},
	{
		Title:       "Real-Time Collaboration Tool",
		Description: "Shared whiteboard and document editor with live cursors and offline sync.",
		Category:    domain.CategorySoftware,
		Image:       unsplash("1522071820081-009f0129c71c"),
	},
	{
		Title:       "Low-Power Memory Controller",
		Description: "RTL design and verification of an SRAM controller with clock gating for battery devices.",
		Category:    domain.CategoryVLSI,
		Image:       unsplash("1555949963-ff9fe0c870eb"),
	},
}
